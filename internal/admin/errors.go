package admin

import "errors"

// ErrSelf is returned when a staff member tries to change or remove their
// own account through the admin group.
var ErrSelf = errors.New("cannot modify your own account")
