package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72

	DefaultTokenTTL time.Duration = time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m        *UserModel
	mb       common.MessageProducer
	c        *common.Cache
	secret   []byte
	tokenTTL time.Duration
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Password  Password      `json:"-"`
	BlogIDs   []string      `json:"-"`
	Blogs     []BlogSummary `json:"blogs"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Version   int           `json:"-"`
}

// BlogSummary is the view of a blog embedded in a user listing.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Password holds only the bcrypt hash; the plain text is never kept.
type Password struct {
	hash []byte
}

// AuthToken is returned on a successful login.
type AuthToken struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
