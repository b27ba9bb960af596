package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chakrasapp/chakras-server/internal/auth"
	"github.com/chakrasapp/chakras-server/internal/domain"
	"github.com/chakrasapp/chakras-server/internal/errors"
	"github.com/chakrasapp/chakras-server/internal/id"
	"github.com/chakrasapp/chakras-server/internal/store"
)

// AuthService handles registration, login, and refresh-token sessions.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(s *store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{store: s, tokens: tokens, logger: logger}
}

// AuthResult is returned by Register, Login, and Refresh.
type AuthResult struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	ExpiresIn    int               `json:"expiresIn"` // Access token lifetime in seconds
}

// Register creates a new account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, errors.Wrap(err, "generate user id")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LikedSongs:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return nil, errors.AlreadyExists("username already in use")
		case errors.Is(err, store.ErrEmailExists):
			return nil, errors.AlreadyExists("email already in use")
		default:
			return nil, errors.Wrap(err, "create user")
		}
	}

	s.logger.Info("user registered", "userId", user.ID, "username", user.Username)
	return s.issueTokens(ctx, user)
}

// Login verifies credentials and starts a new session.
// The same error is returned for a missing user and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, errors.InvalidCredentials("invalid username or password")
		}
		return nil, errors.Wrap(err, "lookup user")
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, errors.Wrap(err, "verify password")
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid username or password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
// The old session is revoked, so each refresh token is single use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, errors.Unauthorized("invalid refresh token")
		}
		return nil, errors.Wrap(err, "lookup session")
	}

	if session.Expired(time.Now()) {
		_ = s.store.DeleteSession(ctx, session)
		return nil, errors.TokenExpired("refresh token expired")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, errors.Unauthorized("invalid refresh token")
	}

	if err := s.store.DeleteSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "rotate session")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the session behind the refresh token. Unknown tokens are
// treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByTokenHash(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil
		}
		return errors.Wrap(err, "lookup session")
	}
	return s.store.DeleteSession(ctx, session)
}

// Me returns the API-safe view of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, errors.NotFound("user not found")
		}
		return nil, errors.Wrap(err, "get user")
	}
	pub := user.Public()
	return &pub, nil
}

// issueTokens creates an access token plus a refresh session for the user.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "generate access token")
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "generate refresh token")
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, errors.Wrap(err, "generate session id")
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokens.RefreshTokenDuration()),
		CreatedAt:        now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	return &AuthResult{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}
