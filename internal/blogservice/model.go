package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
	ErrEditConflict   = errors.New("unable to update the record due to an edit conflict, please try again")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// blogColumns selects a blog joined with its owner from a relation aliased b.
const blogColumns = `b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.username, u.name`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*Blog, error) {
	var blog Blog

	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &blog.User.Username, &blog.User.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	blog.User.ID = blog.UserID

	return &blog, nil
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		WITH b AS (
			INSERT INTO blogs (id, title, author, url, likes, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *)
		SELECT ` + blogColumns + `
		FROM b
		JOIN users u ON b.user_id = u.id`

	row := m.db.QueryRowContext(ctx, query, blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID)

	inserted, err := scanBlog(row)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	*blog = *inserted

	return nil
}

// get returns a blog by its ID joining the users table to get the owner.
func (m *BlogModel) get(ctx context.Context, id string) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	return scanBlog(m.db.QueryRowContext(ctx, query, id))
}

// update saves the title, author, url and likes of blog if its version is unchanged.
func (m *BlogModel) update(ctx context.Context, blog *Blog) error {
	query := `
		WITH b AS (
			UPDATE blogs
			SET title = $1, author = $2, url = $3, likes = $4, updated_at = NOW(), version = version + 1
			WHERE id = $5 AND version = $6
			RETURNING *)
		SELECT ` + blogColumns + `
		FROM b
		JOIN users u ON b.user_id = u.id`

	row := m.db.QueryRowContext(ctx, query, blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version)

	updated, err := scanBlog(row)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return ErrEditConflict
		default:
			return err
		}
	}

	*blog = *updated

	return nil
}

// like increments the likes of a blog in place, so concurrent likes are never lost.
func (m *BlogModel) like(ctx context.Context, id string) (*Blog, error) {
	query := `
		WITH b AS (
			UPDATE blogs
			SET likes = likes + 1, updated_at = NOW(), version = version + 1
			WHERE id = $1
			RETURNING *)
		SELECT ` + blogColumns + `
		FROM b
		JOIN users u ON b.user_id = u.id`

	return scanBlog(m.db.QueryRowContext(ctx, query, id))
}

func (m *BlogModel) delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// list returns blogs oldest first. A nil limit returns every blog and a nil offset starts at the first.
func (m *BlogModel) list(ctx context.Context, limit, offset *int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at, b.id
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
