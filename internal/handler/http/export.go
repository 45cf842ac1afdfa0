package http

import (
	"log/slog"
	"net/http"

	"github.com/kintai-works/kintai-backend-go/internal/domain/export"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
)

type ExportHandler interface {
	Report(w http.ResponseWriter, r *http.Request)
	Workbook(w http.ResponseWriter, r *http.Request)
	CSV(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.ExportService
}

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

func exportRequest(r *http.Request) export.ExportRequest {
	req := export.ExportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
	}
	if storeID := r.URL.Query().Get("store_id"); storeID != "" {
		req.StoreID = &storeID
	}
	return req
}

// Report implements ExportHandler.
func (h *exportHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	req := exportRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.exportService.Report(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

// Workbook implements ExportHandler.
func (h *exportHandlerImpl) Workbook(w http.ResponseWriter, r *http.Request) {
	req := exportRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.exportService.Workbook(r.Context(), req)
	if err != nil {
		slog.Error("Export workbook error", "error", err, "year", req.Year, "month", req.Month)
		response.HandleError(w, err)
		return
	}
	response.File(w, doc)
}

// CSV implements ExportHandler.
func (h *exportHandlerImpl) CSV(w http.ResponseWriter, r *http.Request) {
	req := exportRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.exportService.CSV(r.Context(), req)
	if err != nil {
		slog.Error("Export csv error", "error", err, "year", req.Year, "month", req.Month)
		response.HandleError(w, err)
		return
	}
	response.File(w, doc)
}
