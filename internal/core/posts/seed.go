package posts

import (
	"context"
	"fmt"
	"sort"
)

// SeedAuthor is the author of every sample post
const SeedAuthor = "Postwall"

const (
	seedAddress = "1 Market Street, Business Center Plaza 2"
	seedLink    = "https://www.google.com/"
	seedVideo   = "https://www.youtube.com/watch?v=WhWc3b3KhnY"
	seedContent = "First post in our network!"
)

var seedLocation = Location{Lat: 55.703810, Lng: 37.623851}

// samplePosts builds the fixed sample set. Reposts name their source by index
// into the returned slice via sourceOf.
func samplePosts() (items []*Post, sourceOf map[int]int) {
	original := &Post{Author: SeedAuthor, Content: "someContent", Created: 1551819600000, Type: PostTypePost}

	block := func() []*Post {
		return []*Post{
			{Author: SeedAuthor, Content: seedContent, Created: 1588712400000, Type: PostTypeEvent, Address: seedAddress,
				SharedByMe: true, ShareCount: 1, CommentedByMe: true, CommentCount: 1},
			{Author: SeedAuthor, Content: seedContent, Created: 1583010000000, Type: PostTypeEvent, Location: &seedLocation},
			{Author: SeedAuthor, Content: "REPOST: " + seedContent, Created: 1583010000000, Type: PostTypeRepost},
			{Author: SeedAuthor, Content: "REPOST: " + seedContent, Created: 1583010000000, Type: PostTypeRepost},
			{Author: SeedAuthor, Content: seedContent, Created: 1520283600000, Type: PostTypeAdvertisement, Link: seedLink},
			{Author: SeedAuthor, Content: seedContent, Created: 1520283600000, Type: PostTypeVideo, VideoURL: seedVideo},
			{Author: SeedAuthor, Content: seedContent, Created: 1520283600000, Type: PostTypePost},
		}
	}

	items = []*Post{original}
	sourceOf = make(map[int]int)
	for i := 0; i < 3; i++ {
		b := block()
		// the first repost of every block points at the original
		sourceOf[len(items)+2] = 0
		items = append(items, b...)
	}

	return items, sourceOf
}

// Seed inserts the sample posts through the repository's normal save path,
// oldest first, so ids increase with Created.
func Seed(ctx context.Context, repo Repository) (int, error) {
	items, sourceOf := samplePosts()

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Created < items[order[b]].Created
	})

	saved := make(map[int]*Post, len(items))
	for _, idx := range order {
		p := items[idx].Clone()
		p.ID = NewPostID
		if src, ok := sourceOf[idx]; ok {
			p.Source = saved[src].Clone()
		}

		stored, err := repo.Save(ctx, NewPost{Post: p})
		if err != nil {
			return len(saved), fmt.Errorf("failed to seed post %d: %w", idx, err)
		}
		saved[idx] = stored
	}

	return len(saved), nil
}
