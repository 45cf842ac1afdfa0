package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type StoreHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	ToggleActive(w http.ResponseWriter, r *http.Request)
}

type storeHandlerImpl struct {
	storeService store.StoreService
}

func NewStoreHandler(storeService store.StoreService) StoreHandler {
	return &storeHandlerImpl{storeService: storeService}
}

// Create implements StoreHandler.
func (h *storeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req store.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.storeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create store error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Store created successfully", created)
}

// List implements StoreHandler.
func (h *storeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := store.StoreFilter{ActiveOnly: r.URL.Query().Get("active") == "true"}

	stores, err := h.storeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stores)
}

// Get implements StoreHandler.
func (h *storeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	found, err := h.storeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements StoreHandler.
func (h *storeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req store.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.storeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update store error", "error", err, "store_id", req.ID)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Store updated successfully", updated)
}

// ToggleActive implements StoreHandler.
func (h *storeHandlerImpl) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	updated, err := h.storeService.ToggleActive(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Store status updated", updated)
}
