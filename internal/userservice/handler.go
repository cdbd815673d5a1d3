package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

// NewUserService wires the user model to the broker and cache. Tokens are signed with secret and expire after ttl.
func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache, secret string, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &UserService{
		m:        NewUserModel(db),
		mb:       mb,
		c:        c,
		secret:   []byte(secret),
		tokenTTL: ttl,
	}
}

// CreateUser registers a new user and publishes a user.created event when an email is given.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, req.Username)
	validateName(v, req.Name)
	validateEmail(v, req.Email)
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Blogs:    []BlogSummary{},
	}

	pwd, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u.Password = pwd

	if err := s.m.insert(ctx, &u); err != nil {
		return nil, err
	}

	if u.Email == "" || s.mb == nil {
		return &u, nil
	}

	event, err := json.Marshal(common.UserCreatedEvent{Email: u.Email, Username: u.Username, Name: u.Name})
	if err != nil {
		return nil, err
	}

	if err := s.mb.Publish(ctx, event, common.UserCreatedKey, common.UserExchange); err != nil {
		return nil, fmt.Errorf("could not publish user created event: %w", err)
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed token for the user.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := newToken(user, s.secret, s.tokenTTL, time.Now())
	if err != nil {
		return nil, err
	}

	return &AuthToken{Token: token, Username: user.Username, Name: user.Name}, nil
}

// GetUserByToken resolves a bearer token to its user. A valid token whose user no longer exists yields ErrInvalidToken.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*User, error) {
	v := common.NewValidator()
	validateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUser(id)); ok {
			return cached.(*User), nil
		}
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUser(id), user)
	}

	return user, nil
}

// GetUsers returns all users with the blogs they own.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getAll(ctx)
}

// AddBlog records blogID in the owner's set of blogs.
func (s *UserService) AddBlog(ctx context.Context, userID, blogID string) error {
	if err := s.m.addBlog(ctx, userID, blogID); err != nil {
		return err
	}
	s.invalidate(userID)

	return nil
}

// RemoveBlog drops blogID from the owner's set of blogs.
func (s *UserService) RemoveBlog(ctx context.Context, userID, blogID string) error {
	if err := s.m.removeBlog(ctx, userID, blogID); err != nil {
		return err
	}
	s.invalidate(userID)

	return nil
}

func (s *UserService) invalidate(userID string) {
	if s.c != nil {
		s.c.Delete(common.CacheKeyUser(userID))
	}
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
