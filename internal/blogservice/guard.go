package blogservice

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("only the owner may modify this blog")
)

// Reason explains why a mutation was denied.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotFound        Reason = "not_found"
	ReasonForbidden       Reason = "forbidden"
)

// Decision is the outcome of an authorization check. Reason is empty when Allowed is true.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Err maps a denial to ErrUnauthenticated, ErrRecordNotFound or ErrForbidden, and an allow to nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	switch d.Reason {
	case ReasonUnauthenticated:
		return ErrUnauthenticated
	case ReasonNotFound:
		return ErrRecordNotFound
	default:
		return ErrForbidden
	}
}

// AuthorizeCreate allows any authenticated user to create a blog.
func AuthorizeCreate(requestingUserID string) Decision {
	if normalizeID(requestingUserID) == "" {
		return deny(ReasonUnauthenticated)
	}

	return allow
}

// AuthorizeMutation decides whether requestingUserID may update or delete blog.
// A nil blog means it does not exist. Existence is checked before ownership so
// a missing blog never reveals anything beyond "not found".
func AuthorizeMutation(requestingUserID string, blog *Blog) Decision {
	if d := AuthorizeCreate(requestingUserID); !d.Allowed {
		return d
	}

	if blog == nil {
		return deny(ReasonNotFound)
	}

	if normalizeID(blog.UserID) != normalizeID(requestingUserID) {
		return deny(ReasonForbidden)
	}

	return allow
}

// normalizeID trims id and puts UUIDs in their canonical lower-case form.
func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}

	return id
}
