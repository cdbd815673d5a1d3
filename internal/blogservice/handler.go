package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloglist/internal/blogstats"
	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, owners BlogOwners, c *common.Cache) *BlogService {
	return newBlogService(newBlogModel(db), owners, c)
}

func newBlogService(m blogStore, owners BlogOwners, c *common.Cache) *BlogService {
	return &BlogService{m: m, owners: owners, c: c}
}

// CreateBlog stores a new blog owned by userID and then records it in the owner's blog set.
// If recording fails the blog stays stored and the error is returned.
func (s *BlogService) CreateBlog(ctx context.Context, userID string, req *CreateBlogRequest) (*Blog, error) {
	if err := AuthorizeCreate(userID).Err(); err != nil {
		return nil, err
	}

	blog := &Blog{
		ID:     uuid.NewString(),
		Title:  sanitizeText(req.Title),
		Author: sanitizeText(req.Author),
		URL:    req.URL,
		UserID: userID,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator()
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}
	s.invalidate(blog.ID)

	if err := s.owners.AddBlog(ctx, blog.UserID, blog.ID); err != nil {
		return nil, fmt.Errorf("blog %s stored but not added to its owner: %w", blog.ID, err)
	}

	return blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	if cached, ok := s.cached(id); ok {
		return cached, nil
	}

	blog, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyBlog(id), *blog)
	}

	return blog, nil
}

// GetBlogs returns blogs oldest first. Without a limit every blog is returned.
func (s *BlogService) GetBlogs(ctx context.Context, limit, offset *int) ([]Blog, error) {
	v := common.NewValidator()
	validatePagination(v, limit, offset)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.list(ctx, limit, offset)
}

// UpdateBlog changes the fields set in req. Only the owner may update a blog.
func (s *BlogService) UpdateBlog(ctx context.Context, userID, id string, req *UpdateBlogRequest) (*Blog, error) {
	blog, err := s.authorize(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = sanitizeText(*req.Title)
	}
	if req.Author != nil {
		blog.Author = sanitizeText(*req.Author)
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator()
	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.update(ctx, blog); err != nil {
		return nil, err
	}
	s.invalidate(blog.ID)

	return blog, nil
}

// DeleteBlog deletes a blog and then removes it from the owner's blog set. Only the owner may delete a blog.
// If removing from the set fails the blog stays deleted and the error is returned.
func (s *BlogService) DeleteBlog(ctx context.Context, userID, id string) error {
	blog, err := s.authorize(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.m.delete(ctx, blog.ID); err != nil {
		return err
	}
	s.invalidate(blog.ID)

	if err := s.owners.RemoveBlog(ctx, blog.UserID, blog.ID); err != nil {
		return fmt.Errorf("blog %s deleted but not removed from its owner: %w", blog.ID, err)
	}

	return nil
}

// LikeBlog adds one like to a blog. Anyone may like a blog.
func (s *BlogService) LikeBlog(ctx context.Context, id string) (*Blog, error) {
	id, ok := canonicalID(id)
	if !ok {
		return nil, ErrRecordNotFound
	}

	blog, err := s.m.like(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(blog.ID)

	return blog, nil
}

// Stats summarizes every stored blog. The result is cached until the next change to any blog.
func (s *BlogService) Stats(ctx context.Context) (*blogstats.Summary, error) {
	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyBlogStats()); ok {
			summary := cached.(blogstats.Summary)
			return &summary, nil
		}
	}

	gen := s.generation()

	blogs, err := s.m.list(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]blogstats.Blog, len(blogs))
	for i, b := range blogs {
		entries[i] = blogstats.Blog{Title: b.Title, Author: b.Author, Likes: b.Likes}
	}

	summary := blogstats.Summarize(entries)
	s.cacheStats(gen, summary)

	return &summary, nil
}

// authorize loads the blog a mutation targets and applies AuthorizeMutation to it.
// The blog is not loaded for anonymous callers.
func (s *BlogService) authorize(ctx context.Context, userID, id string) (*Blog, error) {
	var blog *Blog

	if id, ok := canonicalID(id); ok && AuthorizeCreate(userID).Allowed {
		b, err := s.m.get(ctx, id)
		switch {
		case err == nil:
			blog = b
		case errors.Is(err, ErrRecordNotFound):
		default:
			return nil, err
		}
	}

	if err := AuthorizeMutation(userID, blog).Err(); err != nil {
		return nil, err
	}

	return blog, nil
}

func (s *BlogService) cached(id string) (*Blog, bool) {
	if s.c == nil {
		return nil, false
	}

	cached, ok := s.c.Get(common.CacheKeyBlog(id))
	if !ok {
		return nil, false
	}

	blog := cached.(Blog)
	return &blog, true
}

// invalidate drops the cached blog and statistics and starts a new generation,
// so statistics computed from a list read before the change are never cached.
func (s *BlogService) invalidate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.c != nil {
		s.c.Delete(common.CacheKeyBlog(id), common.CacheKeyBlogStats())
	}
}

func (s *BlogService) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen
}

// cacheStats stores summary unless a blog changed since generation gen was read.
func (s *BlogService) cacheStats(gen uint64, summary blogstats.Summary) {
	if s.c == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen == gen {
		s.c.Set(common.CacheKeyBlogStats(), summary)
	}
}
