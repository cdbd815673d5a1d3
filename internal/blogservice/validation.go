package blogservice

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(v.CheckStringLength(author, 0, 100), "author", "must not be more than 100 characters long")
}

func validateURL(v *common.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	v.Check(v.IsURL(url), "url", "must be a valid http or https URL")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
}

func validateBlog(v *common.Validator, blog *Blog) {
	validateTitle(v, blog.Title)
	validateAuthor(v, blog.Author)
	validateURL(v, blog.URL)
	validateLikes(v, blog.Likes)
}

func validatePagination(v *common.Validator, limit, offset *int) {
	if limit != nil {
		v.Check(*limit > 0, "limit", "must be greater than zero")
		v.Check(*limit <= 100, "limit", "must not be more than 100")
	}
	if offset != nil {
		v.Check(*offset >= 0, "offset", "must not be negative")
	}
}

// canonicalID returns id in the lower-case hyphenated form blogs are stored and cached under.
// Any other form uuid.Parse accepts (upper case, braces, urn:uuid:) is mapped onto it.
func canonicalID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}

	return u.String(), true
}
