package repositories

import (
	"context"

	"github.com/cbodonnell/flipside/pkg/repositories/models"
	"github.com/cbodonnell/flipside/pkg/save"
)

// Repository stores save snapshots in named slots. A slot is the save file
// name for file storage and a row key for databases.
type Repository interface {
	Close(ctx context.Context) error
	Save(ctx context.Context, slot string, snapshot *save.Snapshot) error
	// Load returns *ErrNotFound when the slot is empty.
	Load(ctx context.Context, slot string) (*save.Snapshot, error)
	Exists(ctx context.Context, slot string) (bool, error)
	// Delete removes the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]models.SaveSlot, error)
}
