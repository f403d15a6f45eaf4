package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
)

type memUser struct {
	user domain.User
	hash string
}

type MockDirectory struct {
	m       sync.Mutex
	users   map[string]*memUser
	touched int
}

func newMockDirectory() *MockDirectory {
	return &MockDirectory{users: make(map[string]*memUser)}
}

func (d *MockDirectory) Create(_ context.Context, u *domain.User, hash string) error {
	d.m.Lock()
	defer d.m.Unlock()
	for _, existing := range d.users {
		if existing.user.Email == u.Email {
			return ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	d.users[u.ID] = &memUser{user: *u, hash: hash}
	return nil
}

func (d *MockDirectory) GetByID(_ context.Context, id string) (*domain.User, error) {
	d.m.Lock()
	defer d.m.Unlock()
	mu, ok := d.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := mu.user
	return &u, nil
}

func (d *MockDirectory) GetByEmail(_ context.Context, email string) (*domain.User, string, error) {
	d.m.Lock()
	defer d.m.Unlock()
	for _, mu := range d.users {
		if mu.user.Email == email {
			u := mu.user
			return &u, mu.hash, nil
		}
	}
	return nil, "", ErrUserNotFound
}

func (d *MockDirectory) List(_ context.Context) ([]*domain.User, error) {
	d.m.Lock()
	defer d.m.Unlock()
	out := make([]*domain.User, 0, len(d.users))
	for _, mu := range d.users {
		u := mu.user
		out = append(out, &u)
	}
	return out, nil
}

func (d *MockDirectory) SetAdmin(_ context.Context, id string, admin bool) error {
	d.m.Lock()
	defer d.m.Unlock()
	mu, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	mu.user.IsAdmin = admin
	return nil
}

func (d *MockDirectory) Delete(_ context.Context, id string) error {
	d.m.Lock()
	defer d.m.Unlock()
	if _, ok := d.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(d.users, id)
	return nil
}

func (d *MockDirectory) TouchSignIn(_ context.Context, id string, at time.Time) error {
	d.m.Lock()
	defer d.m.Unlock()
	mu, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	mu.user.LastSignInAt = &at
	d.touched++
	return nil
}

// put stores a user directly, bypassing password hashing.
func (d *MockDirectory) put(u domain.User) {
	d.m.Lock()
	defer d.m.Unlock()
	d.users[u.ID] = &memUser{user: u}
}
