// Package repository implements MySQL persistence for users, sessions,
// diagnosis records, the medicine catalog, carts, prescriptions and
// doctor profiles.  Sentinel errors shared by more than one repository
// live here so handlers can map them to HTTP statuses.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// record owned by another user.  Handlers translate it into a 403.
var ErrForbidden = errors.New("forbidden")
