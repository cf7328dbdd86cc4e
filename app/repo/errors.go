package repo

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username taken")
	ErrDuplicateEmail    = errors.New("email taken")
)

// translateUniqueViolation maps a driver-level unique-constraint error to the
// domain error for whichever column collided. Anything else passes through
// unchanged.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	target := violatedConstraint(err.Error())
	switch {
	case strings.Contains(target, "email"):
		return ErrDuplicateEmail
	case strings.Contains(target, "username"), strings.Contains(target, "PRIMARY"):
		return ErrDuplicateUsername
	}
	return err
}

// violatedConstraint pulls the constraint identifier out of a duplicate-key
// message. Matching must happen on the identifier alone: mysql embeds the
// colliding value in the message ("Duplicate entry 'email4u' for key
// 'users.PRIMARY'"), so a username that merely contains "email" would
// otherwise read as an email collision. sqlite names the columns after
// "UNIQUE constraint failed:"; mysql names the index after "for key".
func violatedConstraint(msg string) string {
	if _, after, ok := strings.Cut(msg, "UNIQUE constraint failed:"); ok {
		return after
	}
	if !strings.Contains(msg, "Duplicate entry") {
		return ""
	}
	// LastIndex: the quoted value precedes the key clause, so the final
	// occurrence is the real one.
	const marker = "for key '"
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimSuffix(msg[i+len(marker):], "'")
}
