package users

import (
	"context"
	"errors"
)

// User is one row of the demo table.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// ErrNotFound reports that no user exists for the requested id.
var ErrNotFound = errors.New("users: not found")

// Store is a fixed in-memory table standing in for a real database. It is
// seeded at construction and never mutated, so it is safe for concurrent
// reads without locking.
type Store struct {
	byID map[int]User
}

// NewStore seeds the demo table.
func NewStore() *Store {
	rows := []User{
		{ID: 1, Name: "Manas", Email: "manas@example.com", Age: 25},
		{ID: 2, Name: "omkar", Email: "omkar@example.com", Age: 29},
		{ID: 3, Name: "anand", Email: "anand@example.com", Age: 27},
	}
	byID := make(map[int]User, len(rows))
	for _, u := range rows {
		byID[u.ID] = u
	}
	return &Store{byID: byID}
}

// Get returns the user for id, or ErrNotFound. The context mirrors what a
// real database lookup would take; the static table never blocks on it.
func (s *Store) Get(_ context.Context, id int) (User, error) {
	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
