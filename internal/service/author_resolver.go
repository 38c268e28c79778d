package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/logging"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// AuthorNames maps user ids to usernames for one request.
type AuthorNames map[string]string

// Name returns the username for id, or model.UnknownAuthor.
func (n AuthorNames) Name(id string) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return model.UnknownAuthor
}

// AuthorResolver turns author and commenter ids into display names with one
// user query per call, whatever the number of posts or comments.
type AuthorResolver struct {
	users repository.UserRepository
	log   logging.Logger
}

// NewAuthorResolver creates a resolver over the user store.
func NewAuthorResolver(users repository.UserRepository, log logging.Logger) *AuthorResolver {
	return &AuthorResolver{users: users, log: log.With("component", "author_resolver")}
}

// Resolve never fails: malformed ids are skipped and a store failure yields an
// empty mapping, so every name degrades to model.UnknownAuthor.
func (r *AuthorResolver) Resolve(ctx context.Context, ids []string) AuthorNames {
	names := AuthorNames{}

	oids := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, ok := seen[oid]; ok {
			continue
		}
		seen[oid] = struct{}{}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return names
	}

	users, err := r.users.FindByIDs(ctx, oids)
	if err != nil {
		r.log.Warn(ctx, "author name lookup failed", "ids", len(oids), "error", err)
		return names
	}
	for _, u := range users {
		names[u.ID.Hex()] = u.Username
	}
	return names
}

// Decorate attaches display names to a post and its comments, keeping comment order.
func (n AuthorNames) Decorate(post model.Post) model.PostView {
	comments := make([]model.CommentView, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, model.CommentView{Comment: c, Username: n.Name(c.UserID)})
	}
	return model.PostView{
		Post:       post,
		AuthorName: n.Name(post.Author),
		Comments:   comments,
	}
}
