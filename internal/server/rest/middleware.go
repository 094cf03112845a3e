package rest

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"github.com/google/uuid"
)

type ctxKey string

const (
	userKey      ctxKey = "user"
	requestIDKey ctxKey = "requestID"

	RequestIDHeader = "X-Request-ID"

	// slowRequest requests are logged even when they succeed.
	slowRequest = time.Second
)

// RequestID returns the id assigned by WithRequestLog, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithRequestLog tags each request with an id, echoed in X-Request-ID, and
// logs failed or slow requests.
func WithRequestLog(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		if rec.status >= http.StatusBadRequest || elapsed > slowRequest {
			log.Info(r.Context(), "request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", elapsed,
			)
		}
	})
}

// WithRecover turns a handler panic into a 500 response.
func WithRecover(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				log.Error(r.Context(), "panic in handler",
					"request_id", RequestID(r.Context()),
					"panic", fmt.Sprint(p),
					"stack", string(debug.Stack()),
				)
				Error(w, msgInternal, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// parseBearer extracts the token from "Authorization: Bearer <token>". The
// scheme is case-insensitive.
func parseBearer(h string) (string, bool) {
	parts := strings.Split(h, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth resolves the bearer token to a user and stores it in the
// request context.
func RequireAuth(log logging.Logger, users *services.UserService, timeout time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := parseBearer(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			if r.Header.Get(common.AuthorizationHeaderName) != "" {
				log.Warn(r.Context(), "invalid auth header format", "request_id", RequestID(r.Context()))
			}
			Error(w, msgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		user, err := users.Authenticate(ctx, token)
		cancel()
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}
