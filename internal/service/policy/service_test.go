package policy

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolicyRepo struct {
	policies map[string]policy.Policy
}

func (f *fakePolicyRepo) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	p.ID = uuid.NewString()
	f.policies[p.ID] = p
	return p, nil
}

func (f *fakePolicyRepo) GetByID(ctx context.Context, id string) (policy.Policy, error) {
	p, ok := f.policies[id]
	if !ok {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	return p, nil
}

func (f *fakePolicyRepo) ListByStore(ctx context.Context, storeID string) ([]policy.Policy, error) {
	var out []policy.Policy
	for _, p := range f.policies {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePolicyRepo) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	f.policies[p.ID] = p
	return p, nil
}

func (f *fakePolicyRepo) GetEffective(ctx context.Context, storeID string, asOf time.Time) (policy.Policy, error) {
	var candidates []policy.Policy
	for _, p := range f.policies {
		if p.StoreID == storeID && p.IsActive && !p.EffectiveFrom.After(asOf) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].EffectiveFrom.After(candidates[j].EffectiveFrom) })
	return candidates[0], nil
}

type fakeStoreRepo struct {
	store.StoreRepository
	id string
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (store.Store, error) {
	if id != f.id {
		return store.Store{}, store.ErrStoreNotFound
	}
	return store.Store{ID: id}, nil
}

func fields(effectiveFrom string, unit policy.RoundingUnit, startDay int) policy.PolicyFields {
	return policy.PolicyFields{
		Name:               "標準",
		ClosingDayType:     policy.ClosingEndOfMonth,
		RoundingUnit:       unit,
		BreakDeductionType: policy.BreakDeductionManual,
		ShiftStartDay:      startDay,
		EffectiveFrom:      effectiveFrom,
	}
}

func TestPolicyService_Current_LatestEffective(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.NewString()
	svc := NewPolicyService(&fakePolicyRepo{policies: map[string]policy.Policy{}}, &fakeStoreRepo{id: storeID})

	_, err := svc.Create(ctx, policy.CreatePolicyRequest{StoreID: storeID, PolicyFields: fields("2024-01-01", policy.RoundingUnitFive, 1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, policy.CreatePolicyRequest{StoreID: storeID, PolicyFields: fields("2024-04-01", policy.RoundingUnitFifteen, 11)})
	require.NoError(t, err)

	current, err := svc.Current(ctx, storeID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, policy.RoundingUnitFifteen, current.RoundingUnit)
	assert.Equal(t, 11, current.ShiftStartDay)

	earlier, err := svc.Current(ctx, storeID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, policy.RoundingUnitFive, earlier.RoundingUnit)
}

func TestPolicyService_Current_DefaultsWithoutPolicy(t *testing.T) {
	storeID := uuid.NewString()
	svc := NewPolicyService(&fakePolicyRepo{policies: map[string]policy.Policy{}}, &fakeStoreRepo{id: storeID})

	current, err := svc.Current(context.Background(), storeID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, policy.RoundingUnitOne, current.RoundingUnit)
	assert.Equal(t, 1, current.ShiftStartDay)
	assert.Equal(t, policy.BreakDeductionManual, current.BreakDeductionType)
}

func TestPolicyService_Update(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.NewString()
	svc := NewPolicyService(&fakePolicyRepo{policies: map[string]policy.Policy{}}, &fakeStoreRepo{id: storeID})

	created, err := svc.Create(ctx, policy.CreatePolicyRequest{StoreID: storeID, PolicyFields: fields("2024-01-01", policy.RoundingUnitOne, 1)})
	require.NoError(t, err)

	inactive := false
	f := fields("2024-01-01", policy.RoundingUnitFifteen, 16)
	f.IsActive = &inactive
	updated, err := svc.Update(ctx, policy.UpdatePolicyRequest{ID: created.ID, PolicyFields: f})
	require.NoError(t, err)
	assert.Equal(t, policy.RoundingUnitFifteen, updated.RoundingUnit)
	assert.Equal(t, 16, updated.ShiftStartDay)
	assert.False(t, updated.IsActive)
	assert.Equal(t, storeID, updated.StoreID)
}

func TestPolicyService_Create_RejectsBadRoundingUnit(t *testing.T) {
	storeID := uuid.NewString()
	svc := NewPolicyService(&fakePolicyRepo{policies: map[string]policy.Policy{}}, &fakeStoreRepo{id: storeID})

	_, err := svc.Create(context.Background(), policy.CreatePolicyRequest{StoreID: storeID, PolicyFields: fields("2024-01-01", 10, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), policy.ErrInvalidRoundingUnit.Error())
}

func TestPolicyService_Create_UnknownStore(t *testing.T) {
	svc := NewPolicyService(&fakePolicyRepo{policies: map[string]policy.Policy{}}, &fakeStoreRepo{id: uuid.NewString()})

	_, err := svc.Create(context.Background(), policy.CreatePolicyRequest{StoreID: uuid.NewString(), PolicyFields: fields("2024-01-01", 1, 1)})
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}
