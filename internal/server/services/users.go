// Package services holds the task service business logic: credential
// operations, the task ownership guard and the task query engine. Services
// are storage-agnostic; they work against whichever RepositoryManager the
// persistence mode selector produced.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/cryptox"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

var (
	errCredentialsRequired = common.WithMessage(common.ErrValidation, "email and password required")
	errInvalidCredentials  = common.WithMessage(common.ErrUnauthorized, "Invalid credentials")
	errAuthRequired        = common.WithMessage(common.ErrUnauthorized, "Authentication required")
	errInvalidToken        = common.WithMessage(common.ErrUnauthorized, "Invalid token")
	errEmailTaken          = common.WithMessage(common.ErrConflict, "Email already registered")
	errPasswordTooLong     = common.WithMessage(common.ErrValidation, "password is too long")
	errEmailTooLong        = common.WithMessage(common.ErrValidation, fmt.Sprintf("email must be at most %d characters", models.MaxEmailLength))
	errPhoneTooLong        = common.WithMessage(common.ErrValidation, fmt.Sprintf("phone must be at most %d characters", models.MaxPhoneLength))
)

// LoginResult is a freshly issued session token and its owner.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	repomanager  repomanager.RepositoryManager
	passwordCost int
	log          logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, passwordCost int, log logging.Logger) *UserService {
	return &UserService{
		repomanager:  m,
		passwordCost: passwordCost,
		log:          log.With("module", "users"),
	}
}

// Register creates a user with a digested password. Email is stored as given.
func (s *UserService) Register(ctx context.Context, email, password, phone string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errCredentialsRequired
	}
	if utf8.RuneCountInString(email) > models.MaxEmailLength {
		return nil, errEmailTooLong
	}
	if utf8.RuneCountInString(phone) > models.MaxPhoneLength {
		return nil, errPhoneTooLong
	}

	digest, err := cryptox.HashPassword(password, s.passwordCost)
	if err != nil {
		if cryptox.IsPasswordTooLong(err) {
			return nil, errPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Email:          email,
		Phone:          phone,
		PasswordDigest: digest,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users().GetByEmail(ctx, email)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users().GetByID(ctx, id)
}

func (s *UserService) FindByToken(ctx context.Context, token string) (*models.User, error) {
	return s.repomanager.Users().GetByToken(ctx, token)
}

// Verify returns the user when password matches. An unknown email and a wrong
// password both yield common.ErrNotFound.
func (s *UserService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !cryptox.CheckPassword(user.PasswordDigest, password) {
		return nil, common.ErrNotFound
	}
	return user, nil
}

// AttachToken overwrites the user's session token.
func (s *UserService) AttachToken(ctx context.Context, userID int64, token string) (*models.User, error) {
	return s.repomanager.Users().SetToken(ctx, userID, &token)
}

// Login verifies the credentials and issues a new token, replacing any
// previous one.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, errCredentialsRequired
	}

	user, err := s.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "login rejected")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	token, err := common.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user, err = s.AttachToken(ctx, user.ID, token)
	if err != nil {
		return nil, fmt.Errorf("error attaching token: %w", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// Logout clears the user's token so it no longer authenticates.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	if _, err := s.repomanager.Users().SetToken(ctx, userID, nil); err != nil {
		return err
	}
	s.log.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, errAuthRequired
	}
	user, err := s.repomanager.Users().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errInvalidToken
		}
		return nil, err
	}
	return user, nil
}
