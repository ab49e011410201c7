package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
)

type authService struct {
	sessions repository.SessionRepo
}

func NewAuthService(sessions repository.SessionRepo) AuthService {
	return &authService{sessions: sessions}
}

func (s *authService) IssueSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) ResolveToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		return nil, ErrSessionInvalid
	}
	return session, nil
}
