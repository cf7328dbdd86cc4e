// Package authz holds the single ownership rule gating every user-scoped
// operation: the caller may act on a resource iff they are logged in as its
// owner.
package authz

import "errors"

var (
	// ErrNoSession means the caller never authenticated (or logged out).
	ErrNoSession = errors.New("no session")
	// ErrUnauthorized means the caller is authenticated as someone other
	// than the resource owner.
	ErrUnauthorized = errors.New("unauthorized action")
)

// Identity is the session identity of a caller: either anonymous or bound to
// a username. The zero value is anonymous.
type Identity struct {
	username string
	present  bool
}

func Anonymous() Identity { return Identity{} }

func Authenticated(username string) Identity {
	return Identity{username: username, present: true}
}

func (i Identity) Present() bool { return i.present }

// Username returns the bound username and whether one is bound at all.
func (i Identity) Username() (string, bool) { return i.username, i.present }

// OwnerAction decides whether ident may act on a resource owned by owner.
// Returns nil on allow, ErrNoSession when ident is anonymous, and
// ErrUnauthorized on any ownership mismatch.
func OwnerAction(ident Identity, owner string) error {
	if !ident.present {
		return ErrNoSession
	}
	if ident.username != owner {
		return ErrUnauthorized
	}
	return nil
}
