package game

import "errors"

var (
	ErrEntityExists       = errors.New("entity already exists")
	ErrEntityUnknown      = errors.New("entity not registered")
	ErrContainmentCorrupt = errors.New("containment state corrupt")
)
