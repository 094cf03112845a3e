// Package rest is the HTTP transport of the task service: JSON endpoints for
// authentication, task CRUD and store introspection.
package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"github.com/rs/cors"
)

type Deps struct {
	Users *services.UserService
	Tasks *services.TaskService
	Store repomanager.RepositoryManager
}

var endpoints = map[string]map[string]string{
	"auth": {
		"register": "POST /api/auth/register",
		"login":    "POST /api/auth/login",
		"logout":   "POST /api/auth/logout",
		"me":       "GET /api/auth/me",
		"validate": "GET /api/auth/validate",
	},
	"tasks": {
		"list":   "GET /api/tasks",
		"get":    "GET /api/tasks/:id",
		"create": "POST /api/tasks",
		"update": "PUT /api/tasks/:id",
		"delete": "DELETE /api/tasks/:id",
	},
	"database": {
		"info":          "GET /api/db/info",
		"describeUsers": "GET /api/db/describe/users",
		"describeTasks": "GET /api/db/describe/tasks",
	},
}

func Register(mux *http.ServeMux, log logging.Logger, deps Deps, timeout time.Duration) {
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(log, deps.Users, timeout, h)
	}

	// banner
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		Json(w, map[string]any{"message": "Task API is running", "endpoints": endpoints}, http.StatusOK)
	})

	// auth
	mux.Handle("POST /api/auth/register", NewRegisterHandler(log, deps.Users, timeout))
	mux.Handle("POST /api/auth/login", NewLoginHandler(log, deps.Users, timeout))
	mux.Handle("POST /api/auth/logout", auth(NewLogoutHandler(log, deps.Users, timeout)))
	mux.Handle("GET /api/auth/me", auth(NewMeHandler(log, deps.Users, timeout)))
	mux.Handle("GET /api/auth/validate", auth(NewValidateHandler()))

	// tasks
	mux.Handle("GET /api/tasks", auth(NewListTasksHandler(log, deps.Tasks, timeout)))
	mux.Handle("POST /api/tasks", auth(NewCreateTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("GET /api/tasks/{id}", auth(NewGetTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PUT /api/tasks/{id}", auth(NewUpdateTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("DELETE /api/tasks/{id}", auth(NewDeleteTaskHandler(log, deps.Tasks, timeout)))

	// database
	mux.Handle("GET /api/db/info", NewDBInfoHandler(log, deps.Store, timeout))
	mux.Handle("GET /api/db/describe/{table}", NewDescribeTableHandler(log, deps.Store, timeout))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		Error(w, msgNotFound, http.StatusNotFound)
	})
}

// NewHandler builds the full middleware chain around the routes.
func NewHandler(log logging.Logger, deps Deps, timeout time.Duration) http.Handler {
	log = log.With("module", "rest")

	mux := http.NewServeMux()
	Register(mux, log, deps, timeout)

	return cors.AllowAll().Handler(WithRequestLog(log, WithRecover(log, mux)))
}
