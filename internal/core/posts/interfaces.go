package posts

import "context"

// Repository is the content store holding every post.
//
// Implementations must be safe for concurrent use. Every ordered result is sorted by
// Created, newest first, and contains copies the caller may modify freely.
type Repository interface {
	// GetAll returns every stored post
	GetAll(ctx context.Context) ([]*Post, error)

	// GetByID returns nil, nil when no post has the id
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Save inserts or replaces a post and returns what was stored
	Save(ctx context.Context, req SaveRequest) (*Post, error)

	// RemoveByID is a no-op when the id is unknown
	RemoveByID(ctx context.Context, id int64) error

	// GetRecent returns the count most recently created posts.
	// count <= 0 yields an empty slice.
	GetRecent(ctx context.Context, count int) ([]*Post, error)

	// GetPostsAfter returns posts created strictly after the reference post.
	// Returns ErrNotFound when the reference id is unknown.
	GetPostsAfter(ctx context.Context, referenceID int64) ([]*Post, error)

	// GetPostsCreatedBefore returns posts created strictly before the reference post.
	// limit is advisory and not applied. Returns ErrNotFound when the reference id is unknown.
	GetPostsCreatedBefore(ctx context.Context, referenceID int64, limit int) ([]*Post, error)
}

// Service defines the business logic interface for posts
type Service interface {
	ListAll(ctx context.Context) ([]*Post, error)

	// GetByID returns ErrNotFound when the post does not exist
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Save creates or replaces a post. The actor must be the request's author.
	Save(ctx context.Context, req PostRequest, actor Actor) (*Post, error)

	// DeleteByID removes a post owned by actor and returns it as it was before removal
	DeleteByID(ctx context.Context, id int64, actor Actor) (*Post, error)

	// LikeByID and DislikeByID are read-modify-write sequences without a lock
	// spanning both steps; concurrent calls on one post can lose updates.
	LikeByID(ctx context.Context, id int64) (*Post, error)
	DislikeByID(ctx context.Context, id int64) (*Post, error)

	// RepostByID creates a new REPOST authored by actor. An unknown source id
	// leaves the repost's Source unset.
	RepostByID(ctx context.Context, id int64, actor Actor, req RepostRequest) (*Post, error)

	GetRecent(ctx context.Context, count int) ([]*Post, error)
	GetPostsAfter(ctx context.Context, id int64) ([]*Post, error)
	GetPostsCreatedBefore(ctx context.Context, req PostsCreatedBeforeRequest) ([]*Post, error)
}
