// Package session holds the client's authenticated context: the bearer token
// and the cached user summary.
//
// The Store is the only owner of that state. SetAuthenticated is the single
// way to establish a session and sets token and user together; Clear and
// Invalidate remove both. Readers get a consistent snapshot through Get.
// A PersistentStore mirrors the session into the local SQLite metadata table
// so it survives a restart of the client, and wipes it on logout.
package session

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/idkeeper/internal/common"
	"github.com/dmitrijs2005/idkeeper/internal/cryptox"
	"github.com/dmitrijs2005/idkeeper/internal/dbx"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
)

var (
	// ErrNoSession is returned by ReplaceUser when nobody is signed in.
	ErrNoSession = errors.New("no active session")
	// ErrIncompleteSession rejects a token without a user or vice versa.
	ErrIncompleteSession = errors.New("session requires both token and user")
)

var sealedPrefix = []byte("sealed:")

// Store is the session contract used by the transport and the auth service.
type Store interface {
	// Get returns the current session snapshot. It never blocks on I/O.
	Get() models.Session
	// SetAuthenticated replaces the session with token and user atomically.
	SetAuthenticated(ctx context.Context, token string, user models.UserSummary) error
	// ReplaceUser swaps the cached user of an existing session.
	ReplaceUser(ctx context.Context, user models.UserSummary) error
	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// Invalidate clears the session only if it still holds token. It reports
	// whether anything was cleared.
	Invalidate(ctx context.Context, token string) (bool, error)
}

// Option configures a PersistentStore.
type Option func(*PersistentStore)

// WithPassphrase seals the persisted token with a key derived from passphrase.
func WithPassphrase(passphrase []byte) Option {
	return func(s *PersistentStore) {
		if len(passphrase) > 0 {
			s.passphrase = append([]byte(nil), passphrase...)
		}
	}
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *PersistentStore) { s.now = now }
}

// PersistentStore implements Store. With a nil database it keeps the session
// in memory only.
type PersistentStore struct {
	mu      sync.RWMutex
	current models.Session

	db         *sql.DB
	log        logging.Logger
	passphrase []byte
	key        []byte
	now        func() time.Time
}

var _ Store = (*PersistentStore)(nil)

// NewStore creates a store persisting into db. Call Load before first use to
// pick up a session left by a previous run.
func NewStore(db *sql.DB, log logging.Logger, opts ...Option) *PersistentStore {
	s := &PersistentStore{db: db, log: log.With("component", "session"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMemoryStore creates a store without persistence.
func NewMemoryStore(log logging.Logger) *PersistentStore {
	return NewStore(nil, log)
}

func (s *PersistentStore) Get() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.current)
}

// snapshot copies the user so callers cannot mutate the cached summary.
func snapshot(in models.Session) models.Session {
	if in.User == nil {
		return models.Session{}
	}
	u := *in.User
	return models.Session{Token: in.Token, User: &u}
}

// Load initializes the in-memory session from persisted state. Partial,
// unreadable or expired sessions are discarded rather than restored.
func (s *PersistentStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.Session{}
	if s.db == nil {
		return nil
	}

	repo := metadata.NewSQLiteRepository(s.db)

	stored, err := repo.GetMany(ctx, common.SessionTokenKey, common.SessionUserKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	rawToken, rawUser := stored[common.SessionTokenKey], stored[common.SessionUserKey]

	if rawToken == nil && rawUser == nil {
		return nil
	}
	if rawToken == nil || rawUser == nil {
		s.log.Warn(ctx, "discarding incomplete persisted session")
		return s.erase(ctx)
	}

	token, err := s.unseal(ctx, rawToken)
	if err != nil {
		s.log.Warn(ctx, "discarding unreadable persisted session", "error", err)
		return s.erase(ctx)
	}

	var user models.UserSummary
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "discarding persisted session with malformed user", "error", err)
		return s.erase(ctx)
	}

	if exp, ok := TokenExpiry(token); ok && !exp.After(s.now()) {
		s.log.Info(ctx, "persisted session expired", "expired_at", exp)
		return s.erase(ctx)
	}

	s.current = models.Session{Token: token, User: &user}
	s.log.Debug(ctx, "session restored", "email", user.Email)
	return nil
}

func (s *PersistentStore) SetAuthenticated(ctx context.Context, token string, user models.UserSummary) error {
	if token == "" {
		return ErrIncompleteSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, token, user); err != nil {
		return err
	}
	s.current = models.Session{Token: token, User: &user}
	s.log.Info(ctx, "session established", "email", user.Email)
	return nil
}

func (s *PersistentStore) ReplaceUser(ctx context.Context, user models.UserSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Authenticated() {
		return ErrNoSession
	}
	if err := s.persist(ctx, s.current.Token, user); err != nil {
		return err
	}
	s.current = models.Session{Token: s.current.Token, User: &user}
	return nil
}

func (s *PersistentStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.erase(ctx); err != nil {
		return err
	}
	if s.current.Authenticated() {
		s.log.Info(ctx, "session cleared")
	}
	s.current = models.Session{}
	return nil
}

func (s *PersistentStore) Invalidate(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.current.Token != token {
		return false, nil
	}
	if err := s.erase(ctx); err != nil {
		return false, err
	}
	s.current = models.Session{}
	s.log.Warn(ctx, "session rejected by server, cleared")
	return true, nil
}

// persist writes token and user in one transaction. Caller holds s.mu.
func (s *PersistentStore) persist(ctx context.Context, token string, user models.UserSummary) error {
	if s.db == nil {
		return nil
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	var key []byte
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		var rawToken []byte
		var err error
		rawToken, key, err = s.seal(ctx, repo, token)
		if err != nil {
			return err
		}
		if err := repo.Set(ctx, common.SessionTokenKey, rawToken); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionUserKey, rawUser)
	})
	if err != nil {
		return err
	}
	// a salt created in a rolled back transaction never reached disk
	s.key = key
	return nil
}

// erase removes the persisted session. Caller holds s.mu.
func (s *PersistentStore) erase(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.SessionTokenKey, common.SessionUserKey)
	})
}

// seal returns the stored form of token and the key it was sealed with (nil
// when no passphrase is set).
func (s *PersistentStore) seal(ctx context.Context, repo metadata.Repository, token string) ([]byte, []byte, error) {
	if s.passphrase == nil {
		return []byte(token), nil, nil
	}
	key, err := s.sealingKey(ctx, repo)
	if err != nil {
		return nil, nil, err
	}
	sealed, err := cryptox.Seal([]byte(token), key)
	if err != nil {
		return nil, nil, fmt.Errorf("seal session token: %w", err)
	}
	return append(append([]byte(nil), sealedPrefix...), sealed...), key, nil
}

func (s *PersistentStore) unseal(ctx context.Context, raw []byte) (string, error) {
	if !bytes.HasPrefix(raw, sealedPrefix) {
		if s.passphrase != nil {
			return "", fmt.Errorf("%w: token stored unsealed", common.ErrSealedDataUnreadable)
		}
		return string(raw), nil
	}
	if s.passphrase == nil {
		return "", fmt.Errorf("%w: no passphrase configured", common.ErrSealedDataUnreadable)
	}
	key, err := s.sealingKey(ctx, metadata.NewSQLiteRepository(s.db))
	if err != nil {
		return "", err
	}
	plain, err := cryptox.Open(raw[len(sealedPrefix):], key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSealedDataUnreadable, err)
	}
	s.key = key
	return string(plain), nil
}

// sealingKey returns the cached key, or derives it from the stored salt,
// creating the salt through repo when there is none. It never caches: the
// caller does that once the salt is known to be committed.
func (s *PersistentStore) sealingKey(ctx context.Context, repo metadata.Repository) ([]byte, error) {
	if s.key != nil {
		return s.key, nil
	}
	salt, err := repo.Get(ctx, common.SessionSaltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := repo.Set(ctx, common.SessionSaltKey, salt); err != nil {
			return nil, err
		}
	}
	return cryptox.DeriveKey(s.passphrase, salt), nil
}
