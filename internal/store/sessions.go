package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/chakrasapp/chakras-server/internal/domain"
)

const (
	sessionPrefix        = "session:"
	sessionByTokenPrefix = "idx:sessions:token:" // For refresh token lookups
)

// CreateSession stores a refresh session and its token-hash index.
func (s *Store) CreateSession(_ context.Context, session *domain.Session) error {
	key := []byte(sessionPrefix + session.ID)
	tokenKey := []byte(sessionByTokenPrefix + session.RefreshTokenHash)

	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(tokenKey, []byte(session.ID))
	})
}

// GetSessionByTokenHash resolves a refresh token hash to its session.
func (s *Store) GetSessionByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	var sessionID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionByTokenPrefix + tokenHash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sessionID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session index: %w", err)
	}

	var session domain.Session
	if err := s.get([]byte(sessionPrefix+sessionID), &session); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session and its token index.
func (s *Store) DeleteSession(_ context.Context, session *domain.Session) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(sessionPrefix + session.ID)); err != nil {
			return err
		}
		return txn.Delete([]byte(sessionByTokenPrefix + session.RefreshTokenHash))
	})
}

// DeleteUserSessions removes every session belonging to the user,
// revoking all of their refresh tokens.
func (s *Store) DeleteUserSessions(_ context.Context, userID string) error {
	prefix := []byte(sessionPrefix)

	var stale []domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		return listPrefixValues(txn, prefix, func(val []byte) error {
			var session domain.Session
			if err := json.Unmarshal(val, &session); err != nil {
				return err
			}
			if session.UserID == userID {
				stale = append(stale, session)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for i := range stale {
			if err := txn.Delete([]byte(sessionPrefix + stale[i].ID)); err != nil {
				return err
			}
			if err := txn.Delete([]byte(sessionByTokenPrefix + stale[i].RefreshTokenHash)); err != nil {
				return err
			}
		}
		return nil
	})
}
