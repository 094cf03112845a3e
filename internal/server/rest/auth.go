package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
)

type CredentialsIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type UserOut struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginOut struct {
	Token string  `json:"token"`
	User  UserOut `json:"user"`
}

func decodeCredentials(r *http.Request) (CredentialsIn, error) {
	var in CredentialsIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return in, err
	}
	return in, nil
}

func NewRegisterHandler(log logging.Logger, svc *services.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeCredentials(r)
		if err != nil {
			Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Register(ctx, in.Email, in.Password, in.Phone)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, map[string]any{"id": u.ID, "email": u.Email, "phone": u.Phone}, http.StatusCreated)
	}
}

func NewLoginHandler(log logging.Logger, svc *services.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeCredentials(r)
		if err != nil {
			Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res, err := svc.Login(ctx, in.Email, in.Password)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, LoginOut{Token: res.Token, User: userOut(res.User)}, http.StatusOK)
	}
}

func NewLogoutHandler(log logging.Logger, svc *services.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Logout(ctx, user.ID); err != nil {
			WriteErr(w, r, log, err)
			return
		}
		Json(w, map[string]bool{"success": true}, http.StatusOK)
	}
}

func NewMeHandler(log logging.Logger, svc *services.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, _ := CurrentUser(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.FindByID(ctx, current.ID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				Error(w, "User not found", http.StatusNotFound)
				return
			}
			WriteErr(w, r, log, err)
			return
		}
		Json(w, map[string]any{"user": map[string]any{"id": u.ID, "email": u.Email, "phone": u.Phone}}, http.StatusOK)
	}
}

// NewValidateHandler confirms the bearer token; RequireAuth has done the work.
func NewValidateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := CurrentUser(r.Context())
		Json(w, map[string]any{"user": userOut(u)}, http.StatusOK)
	}
}

func userOut(u *models.User) UserOut {
	return UserOut{ID: u.ID, Email: u.Email}
}
