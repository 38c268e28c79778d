package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownAuthor is shown when an author or commenter id cannot be resolved to a user.
const UnknownAuthor = "Unknown"

// Post is a blog entry with its comments embedded in insertion order.
// Author is a user id kept as a plain string; the post does not own the user.
type Post struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Content     string             `json:"content" bson:"content"`
	Author      string             `json:"author" bson:"author"`
	DateCreated time.Time          `json:"dateCreated" bson:"dateCreated"`
	Comments    []Comment          `json:"comments" bson:"comments"`
}

// Comment is embedded in a Post and has no collection of its own.
type Comment struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	UserID  string             `json:"userId" bson:"userId"`
	Comment string             `json:"comment" bson:"comment"`
}

// UserIDs returns the distinct user ids referenced by the post author and its commenters,
// in first-seen order.
func (p *Post) UserIDs() []string {
	seen := make(map[string]struct{}, len(p.Comments)+1)
	ids := make([]string, 0, len(p.Comments)+1)
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	add(p.Author)
	for _, c := range p.Comments {
		add(c.UserID)
	}
	return ids
}

// PostView is a Post decorated with display names for presentation.
type PostView struct {
	Post
	AuthorName string        `json:"authorName"`
	Comments   []CommentView `json:"comments"`
}

// CommentView is a Comment decorated with the commenter's username.
type CommentView struct {
	Comment
	Username string `json:"username"`
}
