package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func NewUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, username, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at, version`

	args := []any{
		u.ID,
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueError(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password_hash, blogs, created_at, updated_at, version
		FROM users
		WHERE username = $1`

	return m.scanOne(m.db.QueryRowContext(ctx, query, username))
}

func (m *UserModel) getByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, username, name, email, password_hash, blogs, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	return m.scanOne(m.db.QueryRowContext(ctx, query, id))
}

func (m *UserModel) scanOne(row *sql.Row) (*User, error) {
	var u User

	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, pq.Array(&u.BlogIDs), &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getAll returns every user ordered by registration time with their blogs populated.
func (m *UserModel) getAll(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, email, blogs, created_at, updated_at, version
		FROM users
		ORDER BY created_at, username`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	var blogIDs []string
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, pq.Array(&u.BlogIDs), &u.CreatedAt, &u.UpdatedAt, &u.Version)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
		blogIDs = append(blogIDs, u.BlogIDs...)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	summaries, err := m.getBlogSummaries(ctx, blogIDs)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Blogs = []BlogSummary{}
		for _, id := range users[i].BlogIDs {
			if b, ok := summaries[id]; ok {
				users[i].Blogs = append(users[i].Blogs, b)
			}
		}
	}

	return users, nil
}

func (m *UserModel) getBlogSummaries(ctx context.Context, ids []string) (map[string]BlogSummary, error) {
	summaries := make(map[string]BlogSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	query := `
		SELECT id, title, author, url
		FROM blogs
		WHERE id = ANY($1::uuid[])`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b BlogSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL); err != nil {
			return nil, err
		}
		summaries[b.ID] = b
	}

	return summaries, rows.Err()
}

// addBlog adds blogID to the user's blog set. Adding an id twice is a no-op.
func (m *UserModel) addBlog(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blogs = CASE WHEN $2::uuid = ANY(blogs) THEN blogs ELSE array_append(blogs, $2::uuid) END,
			updated_at = NOW(), version = version + 1
		WHERE id = $1`

	return m.execOne(ctx, query, userID, blogID)
}

func (m *UserModel) removeBlog(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blogs = array_remove(blogs, $2::uuid), updated_at = NOW(), version = version + 1
		WHERE id = $1`

	return m.execOne(ctx, query, userID, blogID)
}

func (m *UserModel) execOne(ctx context.Context, query string, args ...any) error {
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrNotFound
		default:
			return errors.New("too many rows affected")
		}
	}

	return nil
}
