package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/logger"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to status codes:
// validation 422, not found 404, guard or conflict 409, unauthenticated 401.
func (a *api) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	a.observeError(body.Code)

	log := logger.From(r.Context())
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	} else {
		log.Debug("request rejected", logger.Status(status), zap.Error(err))
	}
	writeJSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	if v, ok := apperr.AsValidation(err); ok {
		return http.StatusUnprocessableEntity, errorBody{Code: "validation", Message: v.Error(), Fields: v.Fields}
	}
	switch {
	case apperr.IsNotFound(err):
		return http.StatusNotFound, errorBody{Code: "not_found", Message: err.Error()}
	case apperr.IsGuard(err), errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrIDTaken):
		return http.StatusConflict, errorBody{Code: "conflict", Message: err.Error()}
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: err.Error()}
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, errorBody{Code: "too_large", Message: "Arquivo muito grande"}
	}
	return http.StatusInternalServerError, errorBody{Code: "internal", Message: "Erro interno"}
}

func (a *api) observeError(kind string) {
	if a.metrics != nil {
		a.metrics.ObserveError(kind)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Code: "bad_request", Message: msg})
}

// decode reads a JSON body into v. It writes the 400 itself and reports false
// when the body is unusable.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		badRequest(w, "JSON inválido: "+err.Error())
		return false
	}
	return true
}
