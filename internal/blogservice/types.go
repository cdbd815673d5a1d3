package blogservice

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"-"`
	User      BlogUser  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// BlogUser is the owner of a blog as shown alongside it.
type BlogUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	db *sql.DB
}

// blogStore is the persistence the service needs. BlogModel implements it on Postgres.
type blogStore interface {
	insert(ctx context.Context, blog *Blog) error
	get(ctx context.Context, id string) (*Blog, error)
	update(ctx context.Context, blog *Blog) error
	delete(ctx context.Context, id string) error
	list(ctx context.Context, limit, offset *int) ([]Blog, error)
	like(ctx context.Context, id string) (*Blog, error)
}

// BlogOwners maintains the set of blog ids each user owns.
type BlogOwners interface {
	AddBlog(ctx context.Context, userID, blogID string) error
	RemoveBlog(ctx context.Context, userID, blogID string) error
}

type BlogService struct {
	m      blogStore
	owners BlogOwners
	c      *common.Cache

	// mu guards gen, the count of changes made through the service.
	mu  sync.Mutex
	gen uint64
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogRequest changes only the fields that are set.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}
