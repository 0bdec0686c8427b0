package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/semaphore"

	"Postwall/internal/core/posts"
)

// PostStore is the in-process content store.
//
// Every operation, reads included, runs inside one exclusive section so the
// history of calls is linearizable. The section is a weight-1 semaphore rather
// than a sync.Mutex so that waiting honours the caller's context.
type PostStore struct {
	sem    *semaphore.Weighted
	items  []*posts.Post // kept sorted newest first
	index  map[int64]*posts.Post
	nextID int64
}

// NewPostStore creates an empty post store. Ids start at 0.
func NewPostStore() *PostStore {
	return &PostStore{
		sem:   semaphore.NewWeighted(1),
		index: make(map[int64]*posts.Post),
	}
}

var _ posts.Repository = (*PostStore)(nil)

var errNilPost = errors.New("save request carries no post")

func (s *PostStore) lock(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("post store unavailable: %w", err)
	}
	return nil
}

func (s *PostStore) unlock() {
	s.sem.Release(1)
}

func (s *PostStore) GetAll(ctx context.Context) ([]*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	return cloneAll(s.items), nil
}

func (s *PostStore) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	return s.index[id].Clone(), nil
}

func (s *PostStore) Save(ctx context.Context, req posts.SaveRequest) (*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	switch r := req.(type) {
	case posts.ReplacePost:
		if r.Post == nil {
			return nil, errNilPost
		}
		if _, ok := s.index[r.Post.ID]; ok {
			s.replace(r.Post.Clone())
			return r.Post.Clone(), nil
		}
		return s.insert(r.Post), nil
	case posts.NewPost:
		if r.Post == nil {
			return nil, errNilPost
		}
		return s.insert(r.Post), nil
	default:
		return nil, fmt.Errorf("unsupported save request %T", req)
	}
}

func (s *PostStore) RemoveByID(ctx context.Context, id int64) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if _, ok := s.index[id]; !ok {
		return nil
	}
	at := s.position(id)
	s.items = append(s.items[:at], s.items[at+1:]...)
	delete(s.index, id)
	return nil
}

func (s *PostStore) GetRecent(ctx context.Context, count int) ([]*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	if count <= 0 {
		return []*posts.Post{}, nil
	}
	if count > len(s.items) {
		count = len(s.items)
	}
	return cloneAll(s.items[:count]), nil
}

func (s *PostStore) GetPostsAfter(ctx context.Context, referenceID int64) ([]*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	ref, ok := s.index[referenceID]
	if !ok {
		return nil, posts.NewNotFoundError(referenceID)
	}

	// items is newest first, so the newer posts are a prefix
	end := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Created <= ref.Created
	})
	return cloneAll(s.items[:end]), nil
}

// GetPostsCreatedBefore ignores limit; callers get every older post
func (s *PostStore) GetPostsCreatedBefore(ctx context.Context, referenceID int64, limit int) ([]*posts.Post, error) {
	if err := s.lock(ctx); err != nil {
		return nil, err
	}
	defer s.unlock()

	ref, ok := s.index[referenceID]
	if !ok {
		return nil, posts.NewNotFoundError(referenceID)
	}

	start := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Created < ref.Created
	})
	return cloneAll(s.items[start:]), nil
}

// insert stores a copy of p under the next id. Callers hold the lock.
func (s *PostStore) insert(p *posts.Post) *posts.Post {
	stored := p.Clone()
	stored.ID = s.nextID
	s.nextID++

	at := s.slot(stored)
	s.items = append(s.items, nil)
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = stored
	s.index[stored.ID] = stored

	return stored.Clone()
}

// replace swaps the entry with p.ID for p, moving it if Created changed. Callers hold the lock.
func (s *PostStore) replace(p *posts.Post) {
	old := s.position(p.ID)
	s.items = append(s.items[:old], s.items[old+1:]...)

	at := s.slot(p)
	s.items = append(s.items, nil)
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = p
	s.index[p.ID] = p
}

// slot is where p belongs in items: after every entry that is newer, or equally
// new with a higher id.
func (s *PostStore) slot(p *posts.Post) int {
	return sort.Search(len(s.items), func(i int) bool {
		return newer(p, s.items[i])
	})
}

// position finds the index of the entry with id. The entry must exist.
func (s *PostStore) position(id int64) int {
	target := s.index[id]
	i := sort.Search(len(s.items), func(i int) bool {
		return !newer(s.items[i], target)
	})
	for ; i < len(s.items); i++ {
		if s.items[i].ID == id {
			return i
		}
	}
	panic(fmt.Sprintf("post store index out of sync for id %d", id))
}

// newer orders posts by Created descending, ties broken by id descending
func newer(a, b *posts.Post) bool {
	if a.Created != b.Created {
		return a.Created > b.Created
	}
	return a.ID > b.ID
}

func cloneAll(items []*posts.Post) []*posts.Post {
	out := make([]*posts.Post, len(items))
	for i, p := range items {
		out[i] = p.Clone()
	}
	return out
}
