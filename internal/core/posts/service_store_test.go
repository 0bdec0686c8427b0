package posts_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postwall/internal/core/posts"
	"Postwall/internal/db/memory"
)

// pausingRepository holds every GetByID caller until all parties have read,
// forcing the interleaving where concurrent likes read the same count.
type pausingRepository struct {
	posts.Repository
	barrier *sync.WaitGroup
}

func (r *pausingRepository) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	p, err := r.Repository.GetByID(ctx, id)
	r.barrier.Done()
	r.barrier.Wait()
	return p, err
}

func TestLikeByID_ConcurrentLikesCanLoseAnUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPostStore()
	stored, err := store.Save(ctx, posts.NewPost{Post: &posts.Post{Author: "alice", Created: 100, LikeCount: 5}})
	require.NoError(t, err)

	var barrier sync.WaitGroup
	barrier.Add(2)
	svc := posts.NewPostService(&pausingRepository{Repository: store, barrier: &barrier}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.LikeByID(ctx, stored.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := store.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	// both likes read 5 and wrote 6
	assert.Equal(t, 6, final.LikeCount)
}

func TestLikeByID_SequentialLikesAccumulate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPostStore()
	stored, err := store.Save(ctx, posts.NewPost{Post: &posts.Post{Author: "alice", Created: 100, LikeCount: 5}})
	require.NoError(t, err)

	svc := posts.NewPostService(store, nil)
	_, err = svc.LikeByID(ctx, stored.ID)
	require.NoError(t, err)
	liked, err := svc.LikeByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, liked.LikeCount)

	for i := 0; i < 9; i++ {
		_, err = svc.DislikeByID(ctx, stored.ID)
		require.NoError(t, err)
	}
	final, err := svc.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, final.LikeCount)
}

func TestPostService_SaveRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := posts.NewPostService(memory.NewPostStore(), nil)
	alice := posts.Actor{ID: 1, Username: "alice"}

	saved, err := svc.Save(ctx, posts.PostRequest{ID: posts.NewPostID, Author: "alice", Content: "hi", Created: 100}, alice)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = svc.DeleteByID(ctx, saved.ID, posts.Actor{ID: 2, Username: "bob"})
	assert.ErrorIs(t, err, posts.ErrForbidden)

	deleted, err := svc.DeleteByID(ctx, saved.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, saved, deleted)

	_, err = svc.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostService_RepostIsNewestAndCarriesSource(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPostStore()
	svc := posts.NewPostService(store, nil)

	original, err := store.Save(ctx, posts.NewPost{Post: &posts.Post{Author: "alice", Content: "original", Created: 100}})
	require.NoError(t, err)

	repost, err := svc.RepostByID(ctx, original.ID, posts.Actor{ID: 2, Username: "bob"}, posts.RepostRequest{Content: "+1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repost.ID)
	assert.Equal(t, "bob", repost.Author)
	assert.Equal(t, posts.PostTypeRepost, repost.Type)
	require.NotNil(t, repost.Source)
	assert.Equal(t, original, repost.Source)

	after, err := svc.GetPostsAfter(ctx, original.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, repost.ID, after[0].ID)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPostStore()

	n, err := posts.Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 22, n)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Created, all[i].Created)
	}

	// the oldest sample is saved first
	assert.Equal(t, int64(0), all[len(all)-1].ID)

	var original *posts.Post
	for _, p := range all {
		if p.Content == "someContent" {
			original = p
		}
	}
	require.NotNil(t, original)

	sourced := 0
	for _, p := range all {
		assert.Equal(t, posts.SeedAuthor, p.Author)
		assert.True(t, p.Type.Valid())
		if p.Source != nil {
			sourced++
			assert.Equal(t, posts.PostTypeRepost, p.Type)
			assert.Equal(t, original.ID, p.Source.ID)
			assert.Greater(t, p.ID, original.ID)
		}
	}
	assert.Equal(t, 3, sourced)

	recent, err := store.GetRecent(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, all[:3], recent)
}
