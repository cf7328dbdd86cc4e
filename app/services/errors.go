package services

import "errors"

// Login failures are distinguished in message text for the user but handled
// identically by calling code.
var (
	ErrUnknownUser = errors.New("incorrect username")
	ErrBadPassword = errors.New("incorrect password")
)
