package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the number of password bytes bcrypt takes into account.
const MaxLength = 72

var ErrTooLong = errors.New("password exceeds 72 bytes")

func Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
