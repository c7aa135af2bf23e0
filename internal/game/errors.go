package game

import "errors"

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerExists    = errors.New("player already exists")
	ErrInvalidName     = errors.New("invalid player name")
	ErrNoSuchDirection = errors.New("no such direction")
	ErrNoSuchExit      = errors.New("no such exit")
	ErrExitExists      = errors.New("exit already exists in that direction")
	ErrLockedDoor      = errors.New("door is locked")
	ErrNotADoor        = errors.New("not a door")
	ErrNoKey           = errors.New("no key")
	ErrAlreadyLocked   = errors.New("door is already locked")
	ErrNotLocked       = errors.New("door is not locked")
	ErrWrongKey        = errors.New("key does not fit")
	ErrNoSuchItem      = errors.New("no such item")
	ErrNoSuchPlayer    = errors.New("no such player")
	ErrNotCarryable    = errors.New("item cannot be carried")
	ErrDuplicateItem   = errors.New("an item with that name is already there")
)
