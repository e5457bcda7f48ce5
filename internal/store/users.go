package store

import (
	"context"
	"strings"

	"github.com/krushit1307/HRMS/internal/domain"
)

func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (domain.User, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return findUserByID(doc, id)
}

// FindUserByEmail matches case-insensitively. The first match wins.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return findUserByEmail(doc, email)
}

func findUserByID(doc Document, id string) (domain.User, error) {
	i := indexOf(doc.Users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return domain.User{}, ErrNotFound
	}
	return doc.Users[i], nil
}

func findUserByEmail(doc Document, email string) (domain.User, error) {
	i := indexOf(doc.Users, func(u domain.User) bool { return domain.SameEmail(u.Email, email) })
	if i < 0 {
		return domain.User{}, ErrNotFound
	}
	return doc.Users[i], nil
}

// AddUser appends a user. Ids and emails must be unused.
func (s *Store) AddUser(ctx context.Context, u domain.User) (domain.User, error) {
	err := s.mutate(ctx, func(doc *Document) error {
		var err error
		u, err = insertUser(doc, u)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func insertUser(doc *Document, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	if err := domain.Validate(u); err != nil {
		return domain.User{}, invalid(err)
	}
	if _, err := findUserByID(*doc, u.ID); err == nil {
		return domain.User{}, ErrDuplicateID
	}
	if _, err := findUserByEmail(*doc, u.Email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	}
	doc.Users = append(doc.Users, u)
	return u, nil
}

// UpdateUser replaces the user with the same id. ErrNotFound leaves the collection unchanged.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	if err := domain.Validate(u); err != nil {
		return domain.User{}, invalid(err)
	}
	err := s.mutate(ctx, func(doc *Document) error {
		i := indexOf(doc.Users, func(x domain.User) bool { return x.ID == u.ID })
		if i < 0 {
			return ErrNotFound
		}
		clash := indexOf(doc.Users, func(x domain.User) bool {
			return x.ID != u.ID && domain.SameEmail(x.Email, u.Email)
		})
		if clash >= 0 {
			return ErrDuplicateEmail
		}
		doc.Users[i] = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
