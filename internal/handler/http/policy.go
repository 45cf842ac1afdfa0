package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByStore(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService policy.PolicyService
	loc           *time.Location
	now           func() time.Time
}

// NewPolicyHandler resolves the current policy by the calendar date in loc.
func NewPolicyHandler(policyService policy.PolicyService, loc *time.Location) PolicyHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &policyHandlerImpl{policyService: policyService, loc: loc, now: time.Now}
}

// Create implements PolicyHandler.
func (h *policyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req policy.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.policyService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create policy error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Policy created successfully", created)
}

// ListByStore implements PolicyHandler.
func (h *policyHandlerImpl) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	policies, err := h.policyService.ListByStore(r.Context(), storeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policies)
}

// Current implements PolicyHandler. Stores without a policy get the defaults.
func (h *policyHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	current, err := h.policyService.Current(r.Context(), storeID, h.now().In(h.loc))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policy.NewPolicyResponse(current))
}

// Get implements PolicyHandler.
func (h *policyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	found, err := h.policyService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements PolicyHandler.
func (h *policyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req policy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update policy error", "error", err, "policy_id", req.ID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Policy updated successfully", updated)
}
