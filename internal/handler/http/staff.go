package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type StaffHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Retire(w http.ResponseWriter, r *http.Request)
	Suspend(w http.ResponseWriter, r *http.Request)
	Reinstate(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type staffHandlerImpl struct {
	staffService staff.StaffService
}

func NewStaffHandler(staffService staff.StaffService) StaffHandler {
	return &staffHandlerImpl{staffService: staffService}
}

// Create implements StaffHandler.
func (h *staffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req staff.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.staffService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create staff error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Staff created successfully", created)
}

// List implements StaffHandler.
func (h *staffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter staff.StaffFilter

	if storeID := query.Get("store_id"); storeID != "" {
		filter.StoreID = &storeID
	}
	if status := query.Get("status"); status != "" {
		s := staff.Status(status)
		filter.Status = &s
	}
	if employmentType := query.Get("employment_type"); employmentType != "" {
		t := staff.EmploymentType(employmentType)
		filter.EmploymentType = &t
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	members, err := h.staffService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, members)
}

// Get implements StaffHandler.
func (h *staffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	found, err := h.staffService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements StaffHandler.
func (h *staffHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req staff.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.staffService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update staff error", "error", err, "staff_id", req.ID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff updated successfully", updated)
}

// Retire implements StaffHandler.
func (h *staffHandlerImpl) Retire(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	updated, err := h.staffService.Retire(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff retired", updated)
}

// Suspend implements StaffHandler.
func (h *staffHandlerImpl) Suspend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	updated, err := h.staffService.Suspend(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff suspended", updated)
}

// Reinstate implements StaffHandler.
func (h *staffHandlerImpl) Reinstate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	updated, err := h.staffService.Reinstate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Staff reinstated", updated)
}

// Delete implements StaffHandler.
func (h *staffHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.staffService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Staff deleted", "staff_id", id)
	response.SuccessWithMessage(w, "Staff deleted successfully", nil)
}
