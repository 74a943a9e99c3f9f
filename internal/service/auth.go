package service

import (
	"context"
	"fmt"

	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/types"
)

// AuthService implements username-only login and resolves bearer tokens to users.
type AuthService struct {
	users  *UserService
	tokens *TokenService
}

func NewAuthService(users *UserService, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Login gets or creates the user and issues a fresh token for it.
func (s *AuthService) Login(ctx context.Context, username string) (*types.TokenResponse, error) {
	user, err := s.users.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	return &types.TokenResponse{
		AccessToken: token,
		TokenType:   types.TokenType,
		Username:    user.Username,
	}, nil
}

// Authenticate verifies token and returns the user it names. Bad tokens,
// empty subjects and unknown users all yield ErrUnauthenticated; store
// failures are returned as is.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	username := claims.Username()
	if username == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrUserNotFound)
	}

	return user, nil
}
