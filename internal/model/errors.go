package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrAlreadySignedIn = errors.New("user is already signed in")

	// Room errors
	ErrDuplicateRoom = errors.New("room number is already in use")
	ErrRoomNotFound  = errors.New("room not found")
	ErrIllegalMove   = errors.New("move is not legal in the current phase")
	ErrUnauthorized  = errors.New("actor may not perform this operation")

	// Credential errors
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialConflict = errors.New("username already exists")
	ErrCredentialInvalid  = errors.New("unknown user and/or password combination")
)
