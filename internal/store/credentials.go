package store

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/krushit1307/HRMS/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func isBcryptHash(v string) bool {
	return strings.HasPrefix(v, "$2a$") || strings.HasPrefix(v, "$2b$") || strings.HasPrefix(v, "$2y$")
}

func (s *Store) loadCredentials(ctx context.Context) (map[string]string, error) {
	raw, ok, err := s.backend.Get(ctx, CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read credentials: %w", err)
	}
	creds := map[string]string{}
	if !ok {
		return creds, nil
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		s.logger.Error("stored credentials are corrupt", zap.Error(err))
		return nil, fmt.Errorf("%w: credentials: %v", ErrCorruptStore, err)
	}
	if creds == nil {
		creds = map[string]string{}
	}
	return creds, nil
}

func (s *Store) saveCredentials(ctx context.Context, creds map[string]string) error {
	b, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("store: encode credentials: %w", err)
	}
	if err := s.backend.Set(ctx, CredentialsKey, string(b)); err != nil {
		return fmt.Errorf("store: write credentials: %w", err)
	}
	return nil
}

func (s *Store) hash(plain string) (string, error) {
	if plain == "" {
		return "", invalid(errors.New("password is empty"))
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("store: hash password: %w", err)
	}
	return string(h), nil
}

// SetPassword stores a bcrypt hash of plain for an existing user.
func (s *Store) SetPassword(ctx context.Context, userID, plain string) error {
	h, err := s.hash(plain)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, err := findUserByID(doc, userID); err != nil {
		return err
	}
	return s.putCredential(ctx, userID, h)
}

func (s *Store) putCredential(ctx context.Context, userID, hash string) error {
	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return err
	}
	creds[userID] = hash
	return s.saveCredentials(ctx, creds)
}

// Register adds u and its password in one call. The email must not be taken.
func (s *Store) Register(ctx context.Context, u domain.User, plain string) (domain.User, error) {
	h, err := s.hash(plain)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	u, err = insertUser(&doc, u)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.save(ctx, doc); err != nil {
		return domain.User{}, err
	}
	if err := s.putCredential(ctx, u.ID, h); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Verify resolves email to a user and checks plain against the stored credential.
// Unknown email, missing credential and wrong password all return ErrInvalidCredentials.
// The bcrypt comparison runs without holding the store lock.
func (s *Store) Verify(ctx context.Context, email, plain string) (domain.User, error) {
	s.mu.Lock()
	doc, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.User{}, err
	}
	u, findErr := findUserByEmail(doc, email)
	var stored string
	var found bool
	if findErr == nil {
		stored, found, err = s.credential(ctx, u.ID)
	}
	s.mu.Unlock()
	if err != nil {
		return domain.User{}, err
	}

	if findErr != nil {
		s.burnCompare(plain)
		return domain.User{}, ErrInvalidCredentials
	}
	ok, legacy := s.matchCredential(stored, found, plain)
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	if legacy {
		s.rehashLegacy(ctx, u.ID, stored, plain)
	}
	return u, nil
}

// ChangePassword replaces the password of userID after checking current. A concurrent
// change of the same credential makes it fail with ErrInvalidCredentials.
func (s *Store) ChangePassword(ctx context.Context, userID, current, next string) error {
	h, err := s.hash(next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	stored, found, err := s.credential(ctx, userID)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if ok, _ := s.matchCredential(stored, found, current); !ok {
		return ErrInvalidCredentials
	}

	replaced, err := s.replaceCredential(ctx, userID, stored, h)
	if err != nil {
		return err
	}
	if !replaced {
		return ErrInvalidCredentials
	}
	return nil
}

// credential returns the stored entry of userID. Callers hold s.mu.
func (s *Store) credential(ctx context.Context, userID string) (string, bool, error) {
	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return "", false, err
	}
	stored, ok := creds[userID]
	return stored, ok, nil
}

// matchCredential compares plain with a stored entry. Legacy plaintext entries are
// compared in constant time and reported so the caller can rehash them; an empty
// entry or password never matches.
func (s *Store) matchCredential(stored string, found bool, plain string) (ok, legacy bool) {
	if !found {
		s.burnCompare(plain)
		return false, false
	}
	if isBcryptHash(stored) {
		return s.compare([]byte(stored), []byte(plain)) == nil, false
	}
	if stored == "" || plain == "" {
		return false, false
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
		return false, false
	}
	return true, true
}

// rehashLegacy swaps a matched plaintext entry for a hash. Failures are logged only.
func (s *Store) rehashLegacy(ctx context.Context, userID, stored, plain string) {
	h, err := s.hash(plain)
	if err != nil {
		s.logger.Warn("rehash legacy credential failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if _, err := s.replaceCredential(ctx, userID, stored, h); err != nil {
		s.logger.Warn("save rehashed credential failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// replaceCredential writes hash for userID if its entry still equals prev.
func (s *Store) replaceCredential(ctx context.Context, userID, prev, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return false, err
	}
	if creds[userID] != prev {
		return false, nil
	}
	creds[userID] = hash
	if err := s.saveCredentials(ctx, creds); err != nil {
		return false, err
	}
	return true, nil
}

// burnCompare spends one bcrypt comparison so a miss costs the same as a wrong password.
func (s *Store) burnCompare(plain string) {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("dayflow-placeholder"), s.passwordCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash == nil {
		return
	}
	_ = s.compare(s.dummyHash, []byte(plain))
}
