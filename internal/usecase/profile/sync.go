package profile

import (
	"context"

	"github.com/google/uuid"
)

// relationStore is the slice of a per-user child repository the syncer needs.
type relationStore[T any] interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error)
	Create(ctx context.Context, row T) (uuid.UUID, error)
	Update(ctx context.Context, row T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// syncRelations reconciles the stored rows of one kind with the submitted
// list. Stored rows whose id is not submitted are deleted first. Submitted
// rows with a known id are updated in place; every other row is created
// under a fresh id. The calls are independent, so a failure part way
// leaves a partial sync behind.
func syncRelations[T any](
	ctx context.Context,
	store relationStore[T],
	userID uuid.UUID,
	incoming []T,
	idOf func(T) uuid.UUID,
	prepare func(row T, id uuid.UUID) T,
) error {
	existing, err := store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	existingIDs := make(map[uuid.UUID]struct{}, len(existing))
	for _, row := range existing {
		existingIDs[idOf(row)] = struct{}{}
	}
	incomingIDs := make(map[uuid.UUID]struct{}, len(incoming))
	for _, row := range incoming {
		if id := idOf(row); id != uuid.Nil {
			incomingIDs[id] = struct{}{}
		}
	}

	for _, row := range existing {
		id := idOf(row)
		if _, keep := incomingIDs[id]; keep {
			continue
		}
		if err := store.Delete(ctx, userID, id); err != nil {
			return err
		}
	}

	for _, row := range incoming {
		id := idOf(row)
		if _, known := existingIDs[id]; known && id != uuid.Nil {
			if err := store.Update(ctx, prepare(row, id)); err != nil {
				return err
			}
			continue
		}
		if _, err := store.Create(ctx, prepare(row, uuid.Nil)); err != nil {
			return err
		}
	}

	return nil
}
