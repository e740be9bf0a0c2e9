// Package services contains the application services of the idkeeper client.
// This file defines the authentication service: register, login, logout,
// token checks, password change and the profile of the signed-in user.
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/session"
)

// RegisterInput is what the user supplies to create an account.
// ConfirmPassword is checked only when non-nil.
type RegisterInput struct {
	Email           string
	FullName        string
	WalletAddress   string
	Password        []byte
	ConfirmPassword []byte
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register and Login establish the session on success and only then.
//   - Login reports a wrong email/password as client.ErrInvalidCredentials.
//   - VerifyToken never reads or writes the session.
//   - ChangePassword keeps the current token unless the service rejects it.
//   - Logout is local and idempotent; the server is not contacted.
//   - Profile and UpdateProfile replace the cached user summary.
//
// All methods honor context cancellation and timeouts.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (models.UserSummary, error)
	Login(ctx context.Context, email string, password []byte) (models.UserSummary, error)
	VerifyToken(ctx context.Context, token string) (*models.TokenInfo, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, fullName string) (models.UserSummary, error)
	Ping(ctx context.Context) error
	Session() models.Session
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, sessions session.Store) AuthService {
	return &authService{client: c, sessions: sessions}
}

// CheckPasswordConfirmation fails with client.ErrValidation unless both
// entries are non-empty and equal.
func CheckPasswordConfirmation(password, confirm []byte) error {
	if len(password) == 0 {
		return invalid("password is required")
	}
	if !bytes.Equal(password, confirm) {
		return invalid("passwords do not match")
	}
	return nil
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (models.UserSummary, error) {
	req := client.RegisterRequest{
		Email:         strings.TrimSpace(in.Email),
		Password:      string(in.Password),
		WalletAddress: strings.TrimSpace(in.WalletAddress),
		FullName:      strings.TrimSpace(in.FullName),
	}

	switch {
	case req.Email == "":
		return models.UserSummary{}, invalid("email is required")
	case req.FullName == "":
		return models.UserSummary{}, invalid("full name is required")
	case req.WalletAddress == "":
		return models.UserSummary{}, invalid("wallet address is required")
	case len(in.Password) == 0:
		return models.UserSummary{}, invalid("password is required")
	}
	if in.ConfirmPassword != nil {
		if err := CheckPasswordConfirmation(in.Password, in.ConfirmPassword); err != nil {
			return models.UserSummary{}, err
		}
	}

	res, err := a.client.Register(ctx, req)
	if err != nil {
		// A duplicate account is a problem with the input, not a state clash.
		return models.UserSummary{}, fmt.Errorf("register: %w", client.Reclassify(err, client.ErrConflict, client.ErrValidation))
	}
	if res.User.Email == "" {
		res.User.Email = req.Email
	}

	if err := a.sessions.SetAuthenticated(ctx, res.Token, res.User); err != nil {
		return models.UserSummary{}, fmt.Errorf("saving session: %w", err)
	}
	return res.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.UserSummary, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return models.UserSummary{}, invalid("email and password are required")
	}

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.SetAuthenticated(ctx, res.Token, res.User); err != nil {
		return models.UserSummary{}, fmt.Errorf("saving session: %w", err)
	}
	return res.User, nil
}

func (a *authService) VerifyToken(ctx context.Context, token string) (*models.TokenInfo, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid("token is required")
	}
	return a.client.VerifyToken(ctx, token)
}

func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	if len(oldPassword) == 0 || len(newPassword) == 0 {
		return invalid("old and new password are required")
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	if err := a.client.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.Profile, error) {
	if err := a.requireSession(); err != nil {
		return nil, err
	}

	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	if err := a.sessions.ReplaceUser(ctx, p.Summary()); err != nil {
		return nil, fmt.Errorf("updating session user: %w", err)
	}
	return p, nil
}

func (a *authService) UpdateProfile(ctx context.Context, fullName string) (models.UserSummary, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return models.UserSummary{}, invalid("full name is required")
	}
	current := a.sessions.Get()
	if !current.Authenticated() {
		return models.UserSummary{}, notSignedIn()
	}

	u, err := a.client.UpdateProfile(ctx, fullName)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("update profile: %w", err)
	}
	if u.ID == "" {
		u.ID = current.User.ID
	}

	if err := a.sessions.ReplaceUser(ctx, *u); err != nil {
		return models.UserSummary{}, fmt.Errorf("updating session user: %w", err)
	}
	return *u, nil
}

// Ping checks that the service answers its health endpoint.
func (a *authService) Ping(ctx context.Context) error {
	_, err := a.client.Health(ctx)
	return err
}

func (a *authService) Session() models.Session {
	return a.sessions.Get()
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) requireSession() error {
	if !a.sessions.Get().Authenticated() {
		return notSignedIn()
	}
	return nil
}
