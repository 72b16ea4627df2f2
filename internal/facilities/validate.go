package facilities

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{1,31}$`)

const (
	maxName = 200
	maxCity = 120
)

// validate normalizes the command in place: names are trimmed and codes
// upper-cased before checking.
func (c *CreateCommand) validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.City = strings.TrimSpace(c.City)

	for _, v := range []string{c.Name, c.Code, c.Address, c.City, c.Description} {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: text fields must be valid UTF-8", ErrInvalid)
		}
	}

	if c.Name == "" || utf8.RuneCountInString(c.Name) > maxName {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalid, maxName)
	}
	if !codePattern.MatchString(c.Code) {
		return fmt.Errorf("%w: code must be 2-32 letters, digits, or dashes", ErrInvalid)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, c.Type)
	}
	if utf8.RuneCountInString(c.City) > maxCity {
		return fmt.Errorf("%w: city is limited to %d characters", ErrInvalid, maxCity)
	}
	if c.Capacity < 0 || c.Capacity > math.MaxInt32 {
		return fmt.Errorf("%w: capacity must be between 0 and %d", ErrInvalid, math.MaxInt32)
	}
	return nil
}
