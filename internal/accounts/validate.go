package accounts

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/JaimeStill/facility-management/pkg/auth"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]{3,150}$`)

const maxNameLength = 150

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-150 letters, digits, or @.+-_", ErrInvalid)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email required", ErrInvalid)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email %q is not a valid address", ErrInvalid, email)
	}
	return nil
}

func validateNames(first, last string) error {
	if len(first) > maxNameLength || len(last) > maxNameLength {
		return fmt.Errorf("%w: names are limited to %d characters", ErrInvalid, maxNameLength)
	}
	return nil
}

func validatePassword(password string, minLength int) error {
	if len(password) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalid, minLength)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password exceeds %d bytes", ErrInvalid, auth.MaxPasswordBytes)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password cannot be blank", ErrInvalid)
	}
	return nil
}

func (c *RegisterCommand) validate(minPassword int) error {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.TrimSpace(c.Email)

	if err := validateUsername(c.Username); err != nil {
		return err
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if err := validateNames(c.FirstName, c.LastName); err != nil {
		return err
	}
	return validatePassword(c.Password, minPassword)
}

func (c *UpdateCommand) validate() error {
	c.Email = strings.TrimSpace(c.Email)

	if err := validateEmail(c.Email); err != nil {
		return err
	}
	return validateNames(c.FirstName, c.LastName)
}
