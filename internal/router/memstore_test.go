package router

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blogapi/internal/model"
)

// memUsers and memPosts stand in for the MongoDB repositories.
type memUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (s *memUsers) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *memUsers) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *memUsers) find(match func(model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

func (s *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Username == username })
}

func (s *memUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, model.User{ID: u.ID, Username: u.Username})
			}
		}
	}
	return out, nil
}

func (s *memUsers) remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

type memPosts struct {
	mu    sync.Mutex
	posts []model.Post
}

func clonePost(p model.Post) *model.Post {
	p.Comments = append([]model.Comment{}, p.Comments...)
	return &p
}

func (s *memPosts) Create(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts = append(s.posts, *clonePost(*post))
	return nil
}

func (s *memPosts) List(_ context.Context) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *clonePost(p))
	}
	return out, nil
}

func (s *memPosts) FindByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	return s.mutate(id, func(*model.Post) bool { return true })
}

func (s *memPosts) UpdateContent(_ context.Context, id primitive.ObjectID, title, content string) (*model.Post, error) {
	return s.mutate(id, func(p *model.Post) bool {
		if title != "" {
			p.Title = title
		}
		if content != "" {
			p.Content = content
		}
		return true
	})
}

func (s *memPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *memPosts) PushComment(_ context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error) {
	return s.mutate(id, func(p *model.Post) bool {
		p.Comments = append(p.Comments, comment)
		return true
	})
}

func (s *memPosts) PullComment(_ context.Context, id, commentID primitive.ObjectID) (*model.Post, error) {
	return s.mutate(id, func(p *model.Post) bool {
		kept := p.Comments[:0]
		for _, c := range p.Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		p.Comments = kept
		return true
	})
}

func (s *memPosts) RemoveCommentAt(_ context.Context, id primitive.ObjectID, index int) (*model.Post, error) {
	return s.mutate(id, func(p *model.Post) bool {
		if index < 0 || index >= len(p.Comments) {
			return false
		}
		p.Comments = append(p.Comments[:index], p.Comments[index+1:]...)
		return true
	})
}

// mutate applies fn to the stored post under the lock; fn returning false
// behaves like a filter that matched nothing.
func (s *memPosts) mutate(id primitive.ObjectID, fn func(*model.Post) bool) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		p := clonePost(s.posts[i])
		if !fn(p) {
			return nil, mongo.ErrNoDocuments
		}
		s.posts[i] = *clonePost(*p)
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}
