package posts

// NewPostID is the id clients send when they do not have one yet
const NewPostID int64 = -1

// PostType tags what kind of post an entry is. Purely descriptive to the store.
type PostType string

const (
	PostTypePost          PostType = "POST"
	PostTypeEvent         PostType = "EVENT"
	PostTypeRepost        PostType = "REPOST"
	PostTypeAdvertisement PostType = "ADVERTISEMENT"
	PostTypeVideo         PostType = "VIDEO"
)

// Valid reports whether t is one of the known post types
func (t PostType) Valid() bool {
	switch t {
	case PostTypePost, PostTypeEvent, PostTypeRepost, PostTypeAdvertisement, PostTypeVideo:
		return true
	}
	return false
}

// Location is a geographic point attached to event posts
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attachment references an uploaded media object
type Attachment struct {
	ID        string `json:"id"`
	MediaType string `json:"mediaType"`
}

// Post is the entity held by the content store.
//
// Created (milliseconds since epoch) is the only ordering key. Every field other than
// ID and Created is payload the store carries through without looking at it.
type Post struct {
	Source        *Post       `json:"source"`
	Location      *Location   `json:"location"`
	Attachment    *Attachment `json:"attachment"`
	Author        string      `json:"author"`
	Content       string      `json:"content"`
	VideoURL      string      `json:"videoUrl,omitempty"`
	Address       string      `json:"address,omitempty"`
	Link          string      `json:"link,omitempty"`
	Type          PostType    `json:"type"`
	ID            int64       `json:"id"`
	Created       int64       `json:"created"`
	LikeCount     int         `json:"countLikes"`
	CommentCount  int         `json:"countComments"`
	ShareCount    int         `json:"countShares"`
	LikedByMe     bool        `json:"likedByMe"`
	CommentedByMe bool        `json:"commentedByMe"`
	SharedByMe    bool        `json:"sharedByMe"`
}

// Clone returns a deep copy of p so callers never share nested values with the store
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Source = p.Source.Clone()
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	if p.Attachment != nil {
		att := *p.Attachment
		c.Attachment = &att
	}
	return &c
}

// SaveRequest tells the store whether a save inserts or replaces.
// Implemented only by NewPost and ReplacePost.
type SaveRequest interface {
	saveRequest()
}

// NewPost inserts Post under a freshly assigned id. Post.ID is ignored.
type NewPost struct {
	Post *Post
}

func (NewPost) saveRequest() {}

// ReplacePost fully replaces the entry identified by Post.ID.
// If the store holds no such entry the post is inserted under a fresh id instead.
type ReplacePost struct {
	Post *Post
}

func (ReplacePost) saveRequest() {}

// Actor is the authenticated account performing an action
type Actor struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// PostRequest is the client payload for creating or replacing a post
type PostRequest struct {
	Source        *Post       `json:"source"`
	Location      *Location   `json:"location"`
	Attachment    *Attachment `json:"attachment"`
	Author        string      `json:"author"`
	Content       string      `json:"content"`
	VideoURL      string      `json:"videoUrl"`
	Address       string      `json:"address"`
	Link          string      `json:"link"`
	Type          PostType    `json:"type"`
	ID            int64       `json:"id"`
	Created       int64       `json:"created"`
	LikeCount     int         `json:"countLikes"`
	CommentCount  int         `json:"countComments"`
	ShareCount    int         `json:"countShares"`
	LikedByMe     bool        `json:"likedByMe"`
	CommentedByMe bool        `json:"commentedByMe"`
	SharedByMe    bool        `json:"sharedByMe"`
}

// ToSaveRequest resolves the request into an insert or a replacement.
// Negative ids (NewPostID) mean the client has no id yet.
func (r PostRequest) ToSaveRequest() SaveRequest {
	p := &Post{
		ID:            r.ID,
		Author:        r.Author,
		Content:       r.Content,
		Created:       r.Created,
		LikedByMe:     r.LikedByMe,
		LikeCount:     r.LikeCount,
		CommentedByMe: r.CommentedByMe,
		CommentCount:  r.CommentCount,
		SharedByMe:    r.SharedByMe,
		ShareCount:    r.ShareCount,
		VideoURL:      r.VideoURL,
		Type:          r.Type,
		Source:        r.Source.Clone(),
		Address:       r.Address,
		Location:      r.Location,
		Link:          r.Link,
		Attachment:    r.Attachment,
	}
	if p.Type == "" {
		p.Type = PostTypePost
	}
	if r.ID < 0 {
		return NewPost{Post: p}
	}
	return ReplacePost{Post: p}
}

// RepostRequest is the client payload for reposting an existing post
type RepostRequest struct {
	Content string `json:"content"`
}

// PostsCreatedBeforeRequest asks for posts older than a reference post
type PostsCreatedBeforeRequest struct {
	ReferenceID int64 `json:"idCurPost"`
	Limit       int   `json:"countUploadedPosts"`
}
