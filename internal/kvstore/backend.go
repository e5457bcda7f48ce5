// Package kvstore holds the flat key/value backends the document store persists into.
// Each key maps to one text value; a Set replaces the whole value in a single write.
package kvstore

import (
	"context"
	"errors"
	"regexp"
)

var ErrInvalidKey = errors.New("kvstore: invalid key")

//go:generate mockgen -source=backend.go -destination=mock/backend_mock.go -package=mock
type Backend interface {
	// Get returns ok=false when the key has never been written or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,200}$`)

func validKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
