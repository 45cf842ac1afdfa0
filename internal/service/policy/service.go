package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
)

type policyServiceImpl struct {
	policyRepo policy.PolicyRepository
	storeRepo  store.StoreRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository, storeRepo store.StoreRepository) policy.PolicyService {
	return &policyServiceImpl{
		policyRepo: policyRepo,
		storeRepo:  storeRepo,
	}
}

func (s *policyServiceImpl) Create(ctx context.Context, req policy.CreatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return policy.PolicyResponse{}, store.ErrStoreNotFound
		}
		return policy.PolicyResponse{}, fmt.Errorf("failed to get store: %w", err)
	}

	entity := policy.Policy{StoreID: req.StoreID, IsActive: true}
	req.Apply(&entity)

	created, err := s.policyRepo.Create(ctx, entity)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to create policy: %w", err)
	}
	return policy.NewPolicyResponse(created), nil
}

func (s *policyServiceImpl) Get(ctx context.Context, id string) (policy.PolicyResponse, error) {
	found, err := s.policyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.PolicyResponse{}, policy.ErrPolicyNotFound
		}
		return policy.PolicyResponse{}, fmt.Errorf("failed to get policy: %w", err)
	}
	return policy.NewPolicyResponse(found), nil
}

func (s *policyServiceImpl) ListByStore(ctx context.Context, storeID string) ([]policy.PolicyResponse, error) {
	policies, err := s.policyRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	responses := make([]policy.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, policy.NewPolicyResponse(p))
	}
	return responses, nil
}

func (s *policyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	existing, err := s.policyRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.PolicyResponse{}, policy.ErrPolicyNotFound
		}
		return policy.PolicyResponse{}, fmt.Errorf("failed to get policy: %w", err)
	}

	req.Apply(&existing)

	updated, err := s.policyRepo.Update(ctx, existing)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to update policy: %w", err)
	}
	return policy.NewPolicyResponse(updated), nil
}

// Current returns the governing policy, or the default when the store has none.
func (s *policyServiceImpl) Current(ctx context.Context, storeID string, asOf time.Time) (policy.Policy, error) {
	found, err := s.policyRepo.GetEffective(ctx, storeID, asOf)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.Default(storeID), nil
		}
		return policy.Policy{}, fmt.Errorf("failed to get effective policy: %w", err)
	}
	return found, nil
}
