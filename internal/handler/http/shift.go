package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

type ShiftHandler interface {
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	UpdateTemplate(w http.ResponseWriter, r *http.Request)
	DeactivateTemplate(w http.ResponseWriter, r *http.Request)
	AssignCell(w http.ResponseWriter, r *http.Request)
	Grid(w http.ResponseWriter, r *http.Request)
	ExportGrid(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// CreateTemplate implements ShiftHandler.
func (h *shiftHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.shiftService.CreateTemplate(r.Context(), req)
	if err != nil {
		slog.Error("Create shift template error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift template created successfully", created)
}

// ListTemplates implements ShiftHandler.
func (h *shiftHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store_id")
	if !validator.IsValidUUID(storeID) {
		response.ValidationError(w, map[string]string{"store_id": "store_id must be a valid UUID"})
		return
	}

	templates, err := h.shiftService.ListTemplates(r.Context(), storeID, r.URL.Query().Get("active") == "true")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

// UpdateTemplate implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.shiftService.UpdateTemplate(r.Context(), req)
	if err != nil {
		slog.Error("Update shift template error", "error", err, "template_id", req.ID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift template updated successfully", updated)
}

// DeactivateTemplate implements ShiftHandler.
func (h *shiftHandlerImpl) DeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	updated, err := h.shiftService.DeactivateTemplate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift template deactivated", updated)
}

// AssignCell implements ShiftHandler. A null shift_template_id clears the cell.
func (h *shiftHandlerImpl) AssignCell(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.shiftService.AssignCell(r.Context(), req)
	if err != nil {
		slog.Error("Assign shift error", "error", err, "staff_id", req.StaffID, "work_date", req.WorkDate)
		response.HandleError(w, err)
		return
	}
	if saved == nil {
		response.SuccessWithMessage(w, "Shift cleared", nil)
		return
	}
	response.SuccessWithMessage(w, "Shift saved", saved)
}

func gridRequest(r *http.Request) shift.GridRequest {
	return shift.GridRequest{
		StoreID: r.URL.Query().Get("store_id"),
		Year:    queryInt(r, "year"),
		Month:   queryInt(r, "month"),
	}
}

// Grid implements ShiftHandler.
func (h *shiftHandlerImpl) Grid(w http.ResponseWriter, r *http.Request) {
	req := gridRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	grid, err := h.shiftService.Grid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}

// ExportGrid implements ShiftHandler.
func (h *shiftHandlerImpl) ExportGrid(w http.ResponseWriter, r *http.Request) {
	req := gridRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.shiftService.ExportGrid(r.Context(), req)
	if err != nil {
		slog.Error("Export shift grid error", "error", err, "store_id", req.StoreID)
		response.HandleError(w, err)
		return
	}
	response.File(w, doc)
}
