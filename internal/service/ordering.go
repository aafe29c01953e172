package service

import (
	"fmt"

	"github.com/google/uuid"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/response"
)

// ApplyReorder assigns position = index to every child named in ids.
// Children that ids omits keep their relative order and are renumbered after
// the listed ones, so positions stay dense and unique.
//
// children is expected in its current display order. The full new order is
// returned along with the subset whose position actually changed.
// An id that is not a child of the parent yields NOT_FOUND and a repeated id
// yields VALIDATION_ERROR. Nothing is modified on error.
func ApplyReorder[T domain.Positioned](children []T, ids []uuid.UUID, kind string) (ordered []T, changed []T, err error) {
	byID := make(map[uuid.UUID]T, len(children))
	for _, c := range children {
		byID[c.GetID()] = c
	}

	listed := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := listed[id]; dup {
			return nil, nil, response.NewValidationError(fmt.Sprintf("Duplicate %s ID in reorder request", kind), id.String())
		}
		if _, ok := byID[id]; !ok {
			return nil, nil, response.NewNotFoundError(fmt.Sprintf("%s with ID %s not found", kind, id), "")
		}
		listed[id] = struct{}{}
	}

	ordered = make([]T, 0, len(children))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	for _, c := range children {
		if _, ok := listed[c.GetID()]; !ok {
			ordered = append(ordered, c)
		}
	}

	for i, c := range ordered {
		if c.GetPosition() != i {
			c.SetPosition(i)
			changed = append(changed, c)
		}
	}
	return ordered, changed, nil
}
