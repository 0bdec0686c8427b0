package posts

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type postService struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewPostService creates a new post service
// logger may be nil, in which case slog.Default() is used
func NewPostService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *postService) ListAll(ctx context.Context) ([]*Post, error) {
	return s.repo.GetAll(ctx)
}

func (s *postService) GetByID(ctx context.Context, id int64) (*Post, error) {
	return s.load(ctx, id)
}

// Save authorises against the author named in the request, not the stored post,
// so users can only write posts under their own name.
func (s *postService) Save(ctx context.Context, req PostRequest, actor Actor) (*Post, error) {
	if actor.Username != req.Author {
		s.logger.Warn("post save rejected",
			"actor", actor.Username,
			"author", req.Author,
			"post_id", req.ID)
		return nil, ErrForbidden
	}

	saved, err := s.repo.Save(ctx, req.ToSaveRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Debug("post saved", "post_id", saved.ID, "author", saved.Author)
	return saved, nil
}

func (s *postService) DeleteByID(ctx context.Context, id int64, actor Actor) (*Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Username != post.Author {
		s.logger.Warn("post delete rejected",
			"actor", actor.Username,
			"author", post.Author,
			"post_id", id)
		return nil, ErrForbidden
	}

	if err := s.repo.RemoveByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to remove post: %w", err)
	}

	s.logger.Debug("post deleted", "post_id", id, "author", post.Author)
	return post, nil
}

func (s *postService) LikeByID(ctx context.Context, id int64) (*Post, error) {
	return s.adjustLikes(ctx, id, 1)
}

// DislikeByID has no floor: disliking an unliked post drives the count negative
func (s *postService) DislikeByID(ctx context.Context, id int64) (*Post, error) {
	return s.adjustLikes(ctx, id, -1)
}

// adjustLikes loads, copies and saves in separate store calls. Another caller can
// interleave between the load and the save, in which case one update is lost.
func (s *postService) adjustLikes(ctx context.Context, id int64, delta int) (*Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	post.LikeCount += delta

	saved, err := s.repo.Save(ctx, ReplacePost{Post: post})
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Debug("post likes adjusted", "post_id", id, "delta", delta, "likes", saved.LikeCount)
	return saved, nil
}

func (s *postService) RepostByID(ctx context.Context, id int64, actor Actor, req RepostRequest) (*Post, error) {
	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load repost source: %w", err)
	}
	if source == nil {
		s.logger.Debug("repost source missing", "source_id", id)
	}

	repost, err := s.repo.Save(ctx, NewPost{Post: &Post{
		ID:      NewPostID,
		Author:  actor.Username,
		Content: req.Content,
		Created: s.now().UnixMilli(),
		Type:    PostTypeRepost,
		Source:  source,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to save repost: %w", err)
	}

	s.logger.Debug("post reposted", "post_id", repost.ID, "source_id", id, "author", actor.Username)
	return repost, nil
}

func (s *postService) GetRecent(ctx context.Context, count int) ([]*Post, error) {
	return s.repo.GetRecent(ctx, count)
}

func (s *postService) GetPostsAfter(ctx context.Context, id int64) ([]*Post, error) {
	return s.repo.GetPostsAfter(ctx, id)
}

func (s *postService) GetPostsCreatedBefore(ctx context.Context, req PostsCreatedBeforeRequest) ([]*Post, error) {
	return s.repo.GetPostsCreatedBefore(ctx, req.ReferenceID, req.Limit)
}

// load turns an absent post into ErrNotFound
func (s *postService) load(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, NewNotFoundError(id)
	}
	return post, nil
}
