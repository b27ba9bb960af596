package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/chakrasapp/chakras-server/internal/domain"
)

const (
	userPrefix           = "user:"
	userByUsernamePrefix = "idx:users:username:" // For login lookups
	userByEmailPrefix    = "idx:users:email:"
)

// normalizeUsername lowercases a username for index storage and lookup.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// normalizeEmail lowercases an email for index storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates a new user account. Username and email must both be
// unused; the uniqueness checks and index writes happen in one transaction.
func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	key := []byte(userPrefix + user.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return ErrUserExists
	}

	usernameKey := []byte(userByUsernamePrefix + normalizeUsername(user.Username))
	emailKey := []byte(userByEmailPrefix + normalizeEmail(user.Email))

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(usernameKey); err == nil {
			return ErrUsernameExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username exists: %w", err)
		}

		if _, err := txn.Get(emailKey); err == nil {
			return ErrEmailExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email exists: %w", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(usernameKey, []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(user.ID))
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.get([]byte(userPrefix+id), &user); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserByIndex(ctx, userByUsernamePrefix+normalizeUsername(username))
}

// GetUserByEmail retrieves a user by email address, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserByIndex(ctx, userByEmailPrefix+normalizeEmail(email))
}

// getUserByIndex resolves an index key to its user record.
func (s *Store) getUserByIndex(ctx context.Context, indexKey string) (*domain.User, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user index: %w", err)
	}

	return s.GetUser(ctx, userID)
}

// UpdateUser persists changes to an existing user. The username and email
// are immutable after registration, so indexes need no maintenance here.
func (s *Store) UpdateUser(_ context.Context, user *domain.User) error {
	key := []byte(userPrefix + user.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	return s.set(key, user)
}
