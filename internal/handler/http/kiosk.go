package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/kiosk"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type KioskHandler interface {
	// Kiosk token routes
	Board(w http.ResponseWriter, r *http.Request)
	Punch(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)

	// Admin routes
	IssueToken(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	kioskService      kiosk.KioskService
	keepaliveInterval time.Duration
}

func NewKioskHandler(kioskService kiosk.KioskService) KioskHandler {
	return &kioskHandlerImpl{
		kioskService:      kioskService,
		keepaliveInterval: 30 * time.Second,
	}
}

// Board implements KioskHandler.
func (h *kioskHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.kioskService.Board(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, board)
}

// Punch implements KioskHandler. The store comes from the kiosk token route and
// the punch time from the server clock.
func (h *kioskHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = chi.URLParam(r, "storeID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.kioskService.Punch(r.Context(), req)
	if err != nil {
		slog.Error("Kiosk punch error", "error", err, "store_id", req.StoreID, "staff_id", req.StaffID)
		response.HandleError(w, err)
		return
	}
	response.Created(w, result.Message, result)
}

// Events streams punch events for the store as server-sent events.
func (h *kioskHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.kioskService.Subscribe(storeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"store_id\":\"%s\"}\n\n", storeID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("kiosk event dropped", "error", err, "event", event.Name)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// IssueToken implements KioskHandler.
func (h *kioskHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	token, err := h.kioskService.IssueToken(r.Context(), storeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("kiosk token issued", "store_id", storeID, "admin_id", middleware.UserIDFromContext(r.Context()))
	response.Created(w, "Kiosk token issued", token)
}
