package blogservice

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockBlogOwners struct {
	mock.Mock
}

func (m *MockBlogOwners) AddBlog(ctx context.Context, userID, blogID string) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

func (m *MockBlogOwners) RemoveBlog(ctx context.Context, userID, blogID string) error {
	args := m.Called(ctx, userID, blogID)
	return args.Error(0)
}

// memStore keeps blogs in insertion order.
type memStore struct {
	mu    sync.Mutex
	order []string
	blogs map[string]Blog
	users map[string]BlogUser
	gets  int
}

func newMemStore(users ...BlogUser) *memStore {
	s := &memStore{blogs: make(map[string]Blog), users: make(map[string]BlogUser)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) insert(ctx context.Context, blog *Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[blog.UserID]
	if !ok {
		return ErrUserForeignKey
	}

	blog.User = u
	blog.Version = 1
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	s.blogs[blog.ID] = *blog
	s.order = append(s.order, blog.ID)

	return nil
}

func (s *memStore) get(ctx context.Context, id string) (*Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets++
	b, ok := s.blogs[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	return &b, nil
}

func (s *memStore) update(ctx context.Context, blog *Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.blogs[blog.ID]
	if !ok || stored.Version != blog.Version {
		return ErrEditConflict
	}

	blog.Version++
	blog.UpdatedAt = time.Now()
	s.blogs[blog.ID] = *blog

	return nil
}

func (s *memStore) delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return ErrRecordNotFound
	}

	delete(s.blogs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

func (s *memStore) list(ctx context.Context, limit, offset *int) ([]Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blogs := []Blog{}
	for _, id := range s.order {
		blogs = append(blogs, s.blogs[id])
	}

	if offset != nil {
		if *offset >= len(blogs) {
			return []Blog{}, nil
		}
		blogs = blogs[*offset:]
	}
	if limit != nil && *limit < len(blogs) {
		blogs = blogs[:*limit]
	}

	return blogs, nil
}

func (s *memStore) like(ctx context.Context, id string) (*Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	b.Likes++
	b.Version++
	s.blogs[id] = b

	return &b, nil
}
