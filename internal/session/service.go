package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prompt2world-server/internal/shared/config"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/redis"

	"github.com/google/uuid"
)

// revokedKeyPrefix namespaces revoked tokens in Redis.
const revokedKeyPrefix = "session:revoked:"

type Service struct {
	repo   *Repository
	cache  *redis.Client
	logger *slog.Logger
}

// NewService builds the session service. cache may be nil, in which case
// revocation checks go to the database only.
func NewService(repo *Repository, cache *redis.Client, logger *slog.Logger) *Service {
	logger.Debug("Initializing session service", "redis_cache", cache != nil)

	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Create issues a new guest session for a user id.
func (s *Service) Create(ctx context.Context, userID string) (*Session, error) {
	logger := s.logger.With("component", "session_service", "operation", "create", "user_id", userID)
	logger.Debug("Creating session")

	cfg := config.GlobalConfig
	role := RoleUser
	if cfg.IsAdmin(userID) {
		role = RoleAdmin
	}

	sessionID := uuid.NewString()
	token, err := GenerateToken(userID, sessionID, role, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		logger.Error("Failed to generate session token", "error", err)
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &Session{
		UserID:    userID,
		SessionID: sessionID,
		Token:     token,
		Role:      role,
		ExpiresAt: time.Now().Add(cfg.Auth.TokenExpiration),
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	logger.Info("Session created", "session_id", sessionID, "role", role)
	return session, nil
}

// Validate verifies a bearer token: the signature must check out, the token
// must not be revoked, and the backing session must still be active.
func (s *Service) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := ValidateToken(token, config.GlobalConfig.Auth.JWTSecret)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	if s.isRevoked(ctx, token) {
		return nil, errors.Unauthorized("session has been invalidated")
	}

	session, err := s.repo.GetActiveByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.Unauthorized("session not found or inactive")
	}

	return claims, nil
}

// Invalidate revokes the session behind a token.
func (s *Service) Invalidate(ctx context.Context, token string) error {
	logger := s.logger.With("component", "session_service", "operation", "invalidate")

	ok, err := s.repo.Invalidate(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Unauthorized("invalid or expired token")
	}

	s.markRevoked(ctx, token)

	logger.Info("Session invalidated")
	return nil
}

// CleanupExpired deactivates expired sessions; intended for periodic runs.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.DeactivateExpired(ctx)
}

func (s *Service) isRevoked(ctx context.Context, token string) bool {
	if s.cache == nil {
		return false
	}

	exists, err := s.cache.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		// Cache miss behavior on error: fall through to the database check.
		s.logger.Warn("Redis revocation check failed", "error", err)
		return false
	}
	return exists > 0
}

func (s *Service) markRevoked(ctx context.Context, token string) {
	if s.cache == nil {
		return
	}

	ttl := config.GlobalConfig.Auth.TokenExpiration
	if err := s.cache.Set(ctx, revokedKeyPrefix+token, 1, ttl).Err(); err != nil {
		s.logger.Warn("Failed to cache token revocation", "error", err)
	}
}
