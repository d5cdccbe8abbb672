package service

import (
	"context"

	"inventory/m/domain"
	"inventory/m/internal/auth"
)

// Session is returned by signup and login.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (s *Service) Signup(ctx context.Context, c domain.Credentials) (Session, error) {
	c = c.Normalize()
	if err := c.ValidateSignup(); err != nil {
		return Session{}, err
	}
	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		return Session{}, domain.Unexpected("failed to hash password", err)
	}
	u, err := s.store.CreateUser(ctx, domain.User{Username: c.Username, Email: c.Email, Password: hash})
	if err != nil {
		return Session{}, err
	}
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, c domain.Credentials) (Session, error) {
	c = c.Normalize()
	if err := c.ValidateLogin(); err != nil {
		return Session{}, err
	}
	u, err := s.store.UserByEmail(ctx, c.Email)
	if domain.IsKind(err, domain.KindNotFound) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if !s.hasher.Verify(u.Password, c.Password) {
		return Session{}, domain.ErrInvalidCredentials
	}
	return s.session(u)
}

// ResetPassword replaces the password of an authenticated user.
func (s *Service) ResetPassword(ctx context.Context, userID int64, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.Unexpected("failed to hash password", err)
	}
	return s.store.UpdatePassword(ctx, userID, hash)
}

// Authenticate resolves a bearer token to a user id.
func (s *Service) Authenticate(token string) (int64, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return 0, &domain.Error{Kind: domain.KindUnauthorized, Message: "invalid token", Err: auth.ErrInvalidToken}
	}
	return id, nil
}

func (s *Service) session(u domain.User) (Session, error) {
	token, err := s.tokens.Sign(u.ID)
	if err != nil {
		return Session{}, domain.Unexpected("failed to generate token", err)
	}
	return Session{User: u, Token: token}, nil
}
