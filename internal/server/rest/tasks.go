package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
)

const maxBodyBytes = 1 << 20

// taskID parses the {id} path segment. Ids that cannot name a task are
// answered as not found.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		Error(w, msgNotFound, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

func NewListTasksHandler(log logging.Logger, svc *services.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.List(ctx, user.ID, r.URL.Query().Get("sort"))
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, items, http.StatusOK)
	}
}

func NewGetTaskHandler(log logging.Logger, svc *services.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Get(ctx, user.ID, id)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, t, http.StatusOK)
	}
}

func NewCreateTaskHandler(log logging.Logger, svc *services.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		in, err := services.ParseTaskInput(body, true)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Create(ctx, user.ID, in)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, t, http.StatusCreated)
	}
}

func NewUpdateTaskHandler(log logging.Logger, svc *services.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		in, err := services.ParseTaskInput(body, false)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Update(ctx, user.ID, id, in)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(log logging.Logger, svc *services.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Delete(ctx, user.ID, id); err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, map[string]bool{"success": true}, http.StatusOK)
	}
}
