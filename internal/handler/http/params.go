package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

// pathID reads a UUID route parameter, writing a validation error when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, map[string]string{name: name + " must be a valid UUID"})
		return "", false
	}
	return id, true
}

// queryInt returns 0 for a missing or non-numeric parameter; DTO validation reports it.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
