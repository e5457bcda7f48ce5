// Package store is the HR data-access layer: four collections (users, attendance,
// leaves, payroll) kept as one JSON document under a single backend key, plus a
// credential map under a second key.
//
// Every operation reads the whole document, changes it in memory and writes it back.
// A Store serializes its own operations, so concurrent callers in one process do not
// lose updates. Nothing coordinates two processes sharing a backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/krushit1307/HRMS/internal/domain"
	"github.com/krushit1307/HRMS/internal/kvstore"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DocumentKey      = "dayflow_db"
	CredentialsKey   = "dayflow_passwords"
	CorruptBackupKey = DocumentKey + ".corrupt"
)

type Document struct {
	Users      []domain.User             `json:"users"`
	Attendance []domain.AttendanceRecord `json:"attendance"`
	Leaves     []domain.LeaveRequest     `json:"leaves"`
	Payroll    []domain.PayrollRecord    `json:"payroll"`
}

func emptyDocument() Document {
	return Document{
		Users:      []domain.User{},
		Attendance: []domain.AttendanceRecord{},
		Leaves:     []domain.LeaveRequest{},
		Payroll:    []domain.PayrollRecord{},
	}
}

// normalize replaces null collections so the document always encodes as arrays.
func (d *Document) normalize() {
	if d.Users == nil {
		d.Users = []domain.User{}
	}
	if d.Attendance == nil {
		d.Attendance = []domain.AttendanceRecord{}
	}
	if d.Leaves == nil {
		d.Leaves = []domain.LeaveRequest{}
	}
	if d.Payroll == nil {
		d.Payroll = []domain.PayrollRecord{}
	}
}

type Store struct {
	mu             sync.Mutex
	backend        kvstore.Backend
	logger         *zap.Logger
	passwordCost   int
	recoverCorrupt bool
	compare        func(hash, plain []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l.Named("store")
		}
	}
}

// WithPasswordCost sets the bcrypt cost used for new hashes.
func WithPasswordCost(cost int) Option {
	return func(s *Store) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.passwordCost = cost
		}
	}
}

// WithCorruptRecovery controls what Load does with undecodable text. When enabled
// (the default) the text is copied to CorruptBackupKey and the defaults are re-seeded.
func WithCorruptRecovery(enabled bool) Option {
	return func(s *Store) {
		s.recoverCorrupt = enabled
	}
}

func New(backend kvstore.Backend, opts ...Option) *Store {
	s := &Store{
		backend:        backend,
		logger:         zap.L().Named("store"),
		passwordCost:   bcrypt.DefaultCost,
		recoverCorrupt: true,
		compare:        bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current document, or an empty one if nothing was stored yet.
func (s *Store) Load(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save overwrites the stored document.
func (s *Store) Save(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// InitializeIfAbsent seeds the demo data when the document key is missing. Safe to call
// on every start.
func (s *Store) InitializeIfAbsent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.backend.Get(ctx, DocumentKey)
	if err != nil {
		return fmt.Errorf("store: check document: %w", err)
	}
	if ok {
		return nil
	}
	return s.seed(ctx)
}

func (s *Store) seed(ctx context.Context) error {
	if err := s.save(ctx, seedDocument()); err != nil {
		return err
	}

	_, ok, err := s.backend.Get(ctx, CredentialsKey)
	if err != nil {
		return fmt.Errorf("store: check credentials: %w", err)
	}
	if ok {
		return nil
	}
	creds := make(map[string]string, len(seedPasswords))
	for userID, plain := range seedPasswords {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.passwordCost)
		if err != nil {
			return fmt.Errorf("store: hash seed password: %w", err)
		}
		creds[userID] = string(hash)
	}
	if err := s.saveCredentials(ctx, creds); err != nil {
		return err
	}
	s.logger.Info("seeded default data", zap.Int("users", len(seedUsers)))
	return nil
}

func (s *Store) load(ctx context.Context) (Document, error) {
	raw, ok, err := s.backend.Get(ctx, DocumentKey)
	if err != nil {
		return Document{}, fmt.Errorf("store: read document: %w", err)
	}
	if !ok {
		return emptyDocument(), nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return s.recover(ctx, raw, err)
	}
	doc.normalize()
	return doc, nil
}

func (s *Store) recover(ctx context.Context, raw string, cause error) (Document, error) {
	if !s.recoverCorrupt {
		s.logger.Error("stored document is corrupt", zap.Error(cause))
		return Document{}, fmt.Errorf("%w: %v", ErrCorruptStore, cause)
	}

	s.logger.Warn("stored document is corrupt, re-seeding defaults",
		zap.Error(cause),
		zap.Int("bytes", len(raw)),
		zap.String("backup_key", CorruptBackupKey),
	)
	if err := s.backend.Set(ctx, CorruptBackupKey, raw); err != nil {
		return Document{}, fmt.Errorf("store: back up corrupt document: %w", err)
	}
	if err := s.seed(ctx); err != nil {
		return Document{}, err
	}
	return seedDocument(), nil
}

func (s *Store) save(ctx context.Context, doc Document) error {
	doc.normalize()
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}
	if err := s.backend.Set(ctx, DocumentKey, string(b)); err != nil {
		return fmt.Errorf("store: write document: %w", err)
	}
	return nil
}

// mutate runs fn on the loaded document and saves it when fn returns nil.
func (s *Store) mutate(ctx context.Context, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

func indexOf[T any](list []T, match func(T) bool) int {
	for i, v := range list {
		if match(v) {
			return i
		}
	}
	return -1
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}
