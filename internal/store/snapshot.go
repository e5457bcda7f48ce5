package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot is both stored blobs, keyed the same way as in the backend.
type Snapshot struct {
	Document    Document          `json:"dayflow_db"`
	Credentials map[string]string `json:"dayflow_passwords"`
}

// ParseSnapshot decodes a snapshot. Each value may be the object itself or a JSON string
// holding it, which is how a browser localStorage dump looks.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}

	snap := Snapshot{Document: emptyDocument(), Credentials: map[string]string{}}
	if v, ok := raw[DocumentKey]; ok {
		if err := decodeMaybeQuoted(v, &snap.Document); err != nil {
			return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", DocumentKey, err)
		}
		snap.Document.normalize()
	}
	if v, ok := raw[CredentialsKey]; ok {
		if err := decodeMaybeQuoted(v, &snap.Credentials); err != nil {
			return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", CredentialsKey, err)
		}
		if snap.Credentials == nil {
			snap.Credentials = map[string]string{}
		}
	}
	return snap, nil
}

func decodeMaybeQuoted(v json.RawMessage, target any) error {
	v = bytes.TrimSpace(v)
	if len(v) > 0 && v[0] == '"' {
		var inner string
		if err := json.Unmarshal(v, &inner); err != nil {
			return err
		}
		v = []byte(inner)
	}
	return json.Unmarshal(v, target)
}

// Export returns the stored document and credential hashes.
func (s *Store) Export(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Document: doc, Credentials: creds}, nil
}

// Import replaces both blobs. Every record goes through the same checks as Add*, and
// the first failure rejects the whole snapshot with ErrInvalidRecord. Plaintext
// credentials are hashed before they are written.
func (s *Store) Import(ctx context.Context, snap Snapshot) error {
	doc, err := rebuildDocument(snap.Document)
	if err != nil {
		return err
	}

	creds := make(map[string]string, len(snap.Credentials))
	for userID, v := range snap.Credentials {
		if isBcryptHash(v) {
			creds[userID] = v
			continue
		}
		h, err := s.hash(v)
		if err != nil {
			return fmt.Errorf("import credential %s: %w", userID, err)
		}
		creds[userID] = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, doc); err != nil {
		return err
	}
	return s.saveCredentials(ctx, creds)
}

// rebuildDocument inserts every record of src into an empty document, in order.
func rebuildDocument(src Document) (Document, error) {
	doc := emptyDocument()
	reject := func(collection string, i int, err error) error {
		if errors.Is(err, ErrInvalidRecord) {
			return fmt.Errorf("import %s[%d]: %w", collection, i, err)
		}
		return fmt.Errorf("%w: import %s[%d]: %w", ErrInvalidRecord, collection, i, err)
	}

	for i, u := range src.Users {
		if _, err := insertUser(&doc, u); err != nil {
			return Document{}, reject("users", i, err)
		}
	}
	for i, rec := range src.Attendance {
		rec, err := prepareAttendance(rec)
		if err == nil {
			err = insertAttendance(&doc, rec)
		}
		if err != nil {
			return Document{}, reject("attendance", i, err)
		}
	}
	for i, l := range src.Leaves {
		l, err := prepareLeave(l)
		if err == nil {
			err = insertLeave(&doc, l)
		}
		if err != nil {
			return Document{}, reject("leaves", i, err)
		}
	}
	for i, rec := range src.Payroll {
		rec, err := preparePayroll(rec)
		if err == nil {
			err = insertPayroll(&doc, rec)
		}
		if err != nil {
			return Document{}, reject("payroll", i, err)
		}
	}
	return doc, nil
}
