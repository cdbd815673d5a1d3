package blogservice

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeMutation(t *testing.T) {
	owner := uuid.NewString()
	other := uuid.NewString()
	blog := &Blog{ID: uuid.NewString(), Title: "t", URL: "https://example.com", UserID: owner}

	testCases := []struct {
		name   string
		userID string
		blog   *Blog
		want   Decision
		err    error
	}{
		{name: "owner", userID: owner, blog: blog, want: Decision{Allowed: true}},
		{name: "owner in upper case", userID: strings.ToUpper(owner), blog: blog, want: Decision{Allowed: true}},
		{name: "owner with surrounding space", userID: " " + owner + "\n", blog: blog, want: Decision{Allowed: true}},
		{name: "owner in braces", userID: "{" + owner + "}", blog: blog, want: Decision{Allowed: true}},
		{name: "non owner", userID: other, blog: blog, want: Decision{Reason: ReasonForbidden}, err: ErrForbidden},
		{name: "unauthenticated", userID: "", blog: blog, want: Decision{Reason: ReasonUnauthenticated}, err: ErrUnauthenticated},
		{name: "blank user", userID: "  ", blog: blog, want: Decision{Reason: ReasonUnauthenticated}, err: ErrUnauthenticated},
		{name: "missing blog", userID: owner, blog: nil, want: Decision{Reason: ReasonNotFound}, err: ErrRecordNotFound},
		{name: "missing blog for non owner", userID: other, blog: nil, want: Decision{Reason: ReasonNotFound}, err: ErrRecordNotFound},
		{name: "unauthenticated on missing blog", userID: "", blog: nil, want: Decision{Reason: ReasonUnauthenticated}, err: ErrUnauthenticated},
		{name: "non uuid ids compared as strings", userID: "u1", blog: &Blog{UserID: " u1"}, want: Decision{Allowed: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AuthorizeMutation(tc.userID, tc.blog)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.err, got.Err())
		})
	}
}

func TestAuthorizeCreate(t *testing.T) {
	assert.True(t, AuthorizeCreate(uuid.NewString()).Allowed)

	d := AuthorizeCreate("")
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
	assert.ErrorIs(t, d.Err(), ErrUnauthenticated)
}
