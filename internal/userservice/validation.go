package userservice

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	EmailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	UsernameRX = regexp.MustCompile("^[a-zA-Z0-9]+$")
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(v.Matches(username, UsernameRX), "username", "must only contain letters and numbers")
}

func validateName(v *common.Validator, name string) {
	v.Check(v.CheckStringLength(name, 0, 100), "name", "must not be more than 100 characters long")
}

// validateEmail accepts an empty email since it is optional.
func validateEmail(v *common.Validator, email string) {
	if email == "" {
		return
	}
	v.Check(v.Matches(email, EmailRX), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 3 && len(password) <= maxPasswordLength, "password", "must be between 3 and 72 characters long")
}

func validateID(v *common.Validator, id, name string) {
	_, err := uuid.Parse(id)
	v.Check(err == nil, name, "must be a valid id")
}
