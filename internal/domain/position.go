package domain

import "github.com/google/uuid"

// Positioned is an entity ordered by an integer position within its parent.
type Positioned interface {
	GetID() uuid.UUID
	GetPosition() int
	SetPosition(int)
}
