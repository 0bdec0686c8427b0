package memory

import (
	"context"
	"strings"
	"sync"

	"Postwall/internal/core/users"
)

// UserStore keeps accounts in memory, keyed by id with a case-insensitive username index
type UserStore struct {
	byID       map[int64]*users.User
	byUsername map[string]int64
	mu         sync.RWMutex
	nextID     int64
}

// NewUserStore creates an empty user store
func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[int64]*users.User),
		byUsername: make(map[string]int64),
	}
}

var _ users.UserRepository = (*UserStore)(nil)

func usernameKey(username string) string {
	return strings.ToLower(username)
}

func (s *UserStore) Create(ctx context.Context, user *users.User) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := usernameKey(user.Username)
	if _, taken := s.byUsername[key]; taken {
		return nil, users.ErrUsernameTaken
	}

	stored := *user
	stored.ID = s.nextID
	s.nextID++

	s.byID[stored.ID] = &stored
	s.byUsername[key] = stored.ID

	out := stored
	return &out, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[usernameKey(username)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

// Update replaces the stored account. Usernames cannot be changed through Update.
func (s *UserStore) Update(ctx context.Context, user *users.User) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[user.ID]
	if !ok {
		return nil, users.ErrUserNotFound
	}

	stored := *user
	stored.Username = existing.Username
	s.byID[user.ID] = &stored

	out := stored
	return &out, nil
}
