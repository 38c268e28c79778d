package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// PostService handles posts and their embedded comments.
// Mutations take the caller's user id from a verified credential; any
// authenticated caller may edit or delete any post.
type PostService interface {
	ListPosts(ctx context.Context) ([]model.PostView, error)
	GetPost(ctx context.Context, id string) (*model.PostView, error)
	CreatePost(ctx context.Context, title, content, authorID string) (*model.Post, error)
	UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID, userID, text string) (*model.Post, error)
	DeleteCommentByID(ctx context.Context, postID, commentID string) (*model.Post, error)
	DeleteCommentByIndex(ctx context.Context, postID string, index int) (*model.Post, error)
}

type postService struct {
	posts    repository.PostRepository
	resolver *AuthorResolver
	now      func() time.Time
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, resolver *AuthorResolver) PostService {
	return &postService{
		posts:    posts,
		resolver: resolver,
		now:      time.Now,
	}
}

// ListPosts returns all posts with author and commenter names from a single user lookup.
func (s *postService) ListPosts(ctx context.Context) ([]model.PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var ids []string
	for i := range posts {
		ids = append(ids, posts[i].UserIDs()...)
	}
	names := s.resolver.Resolve(ctx, ids)

	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, names.Decorate(p))
	}
	return views, nil
}

// GetPost returns one post decorated the same way as ListPosts.
func (s *postService) GetPost(ctx context.Context, id string) (*model.PostView, error) {
	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, mapPostErr("get post", err)
	}

	view := s.resolver.Resolve(ctx, post.UserIDs()).Decorate(*post)
	return &view, nil
}

// CreatePost stores a post authored by authorID.
func (s *postService) CreatePost(ctx context.Context, title, content, authorID string) (*model.Post, error) {
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if content == "" {
		return nil, apperrors.ErrContentRequired
	}

	post := &model.Post{
		Title:       title,
		Content:     content,
		Author:      authorID,
		DateCreated: s.now().UTC(),
		Comments:    []model.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces title and/or content. Author, comments and dateCreated are untouched.
func (s *postService) UpdatePost(ctx context.Context, id, title, content string) (*model.Post, error) {
	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.UpdateContent(ctx, oid, title, content)
	if err != nil {
		return nil, mapPostErr("update post", err)
	}
	return normalize(post), nil
}

// DeletePost removes a post and every comment on it.
func (s *postService) DeletePost(ctx context.Context, id string) error {
	oid, err := parsePostID(id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, oid); err != nil {
		return mapPostErr("delete post", err)
	}
	return nil
}

// AddComment appends a comment by userID at the end of the post's comment list.
func (s *postService) AddComment(ctx context.Context, postID, userID, text string) (*model.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	comment := model.Comment{
		ID:      primitive.NewObjectID(),
		UserID:  userID,
		Comment: text,
	}
	post, err := s.posts.PushComment(ctx, oid, comment)
	if err != nil {
		return nil, mapPostErr("add comment", err)
	}
	return normalize(post), nil
}

// DeleteCommentByID removes the comment with commentID. An id that matches no
// comment is not an error: the post comes back unchanged.
func (s *postService) DeleteCommentByID(ctx context.Context, postID, commentID string) (*model.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		// Cannot match any stored comment.
		post, err := s.posts.FindByID(ctx, oid)
		if err != nil {
			return nil, mapPostErr("delete comment", err)
		}
		return normalize(post), nil
	}

	post, err := s.posts.PullComment(ctx, oid, cid)
	if err != nil {
		return nil, mapPostErr("delete comment", err)
	}
	return normalize(post), nil
}

// DeleteCommentByIndex removes the comment at zero-based position index.
func (s *postService) DeleteCommentByIndex(ctx context.Context, postID string, index int) (*model.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, mapPostErr("delete comment", err)
	}
	if index < 0 || index >= len(post.Comments) {
		return nil, apperrors.ErrCommentIndexOutOfRange
	}

	updated, err := s.posts.RemoveCommentAt(ctx, oid, index)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// The post or the comment vanished between the read and the update.
			return nil, apperrors.ErrCommentIndexOutOfRange
		}
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return normalize(updated), nil
}

// parsePostID treats a malformed id like an unknown one.
func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrPostNotFound
	}
	return oid, nil
}

func mapPostErr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.ErrPostNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// normalize makes a missing comments array serialize as [].
func normalize(post *model.Post) *model.Post {
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	return post
}
