package userservice

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// ErrPasswordTooLong is returned for passwords bcrypt would silently truncate.
var ErrPasswordTooLong = fmt.Errorf("password must not be longer than %d bytes", maxPasswordLength)

func hashPassword(plain string) (Password, error) {
	if len(plain) > maxPasswordLength {
		return Password{}, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return Password{}, fmt.Errorf("could not hash password: %w", err)
	}

	return Password{hash: hash}, nil
}

// matches reports whether plain is the password p was hashed from.
// A mismatch, including a password no stored hash could come from, is not an error.
func (p Password) matches(plain string) (bool, error) {
	if len(plain) > maxPasswordLength {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
