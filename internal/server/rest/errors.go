package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
)

const (
	msgNotFound     = "Not found"
	msgForbidden    = "Not authorized"
	msgUnauthorized = "Authentication required"
	msgInternal     = "internal error"
)

// WriteErr maps service errors to status codes. Field errors are rendered as
// {"errors":{field:message}}; anything unrecognised is logged and answered
// with a generic 500.
func WriteErr(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	var fields common.FieldErrors
	if errors.As(err, &fields) {
		Json(w, map[string]any{"errors": fields}, http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		Error(w, message(err, err.Error()), http.StatusBadRequest)
	case errors.Is(err, common.ErrUnauthorized):
		Error(w, message(err, msgUnauthorized), http.StatusUnauthorized)
	case errors.Is(err, common.ErrForbidden):
		Error(w, message(err, msgForbidden), http.StatusForbidden)
	case errors.Is(err, common.ErrNotFound):
		Error(w, message(err, msgNotFound), http.StatusNotFound)
	default:
		log.Error(r.Context(), "request failed",
			"request_id", RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "error", err)
		Error(w, msgInternal, http.StatusInternalServerError)
	}
}

// message prefers the client-facing text attached with common.WithMessage.
func message(err error, fallback string) string {
	var me *common.MessageError
	if errors.As(err, &me) {
		return me.Msg
	}
	return fallback
}
