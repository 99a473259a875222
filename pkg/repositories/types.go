package repositories

import "errors"

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// ErrVersionConflict is returned by SaveGame when the stored version is not
// the one the caller loaded.
type ErrVersionConflict struct {
	Expected int64
}

func (e *ErrVersionConflict) Error() string {
	return "version conflict"
}

func IsVersionConflict(err error) bool {
	var target *ErrVersionConflict
	return errors.As(err, &target)
}

// ErrCodeExists is returned by CreateGame when the room code is taken.
type ErrCodeExists struct {
	Code string
}

func (e *ErrCodeExists) Error() string {
	return "code already exists: " + e.Code
}

func IsCodeExists(err error) bool {
	var target *ErrCodeExists
	return errors.As(err, &target)
}
