package world

import (
	"fmt"

	"github.com/Faultbox/charctl/internal/game/entity"
)

// MissingAssociationError means a character body has no look entity.
type MissingAssociationError struct {
	Entity entity.ID
}

func (e *MissingAssociationError) Error() string {
	return fmt.Sprintf("%s: no look entity on the body or its descendants", e.Entity)
}
