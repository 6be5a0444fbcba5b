package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbodonnell/flipside/pkg/repositories/models"
	"github.com/cbodonnell/flipside/pkg/save"
)

// FileRepository keeps each slot as a file in one directory. Names ending in
// .zst are compressed.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %v", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(slot string) (string, error) {
	if slot == "" || slot != filepath.Base(slot) || strings.HasPrefix(slot, ".") {
		return "", fmt.Errorf("invalid save slot %q", slot)
	}
	return filepath.Join(r.dir, slot), nil
}

func (r *FileRepository) Close(ctx context.Context) error {
	return nil
}

// Save writes through a temporary file so a failed write never truncates an
// existing save.
func (r *FileRepository) Save(ctx context.Context, slot string, snapshot *save.Snapshot) error {
	path, err := r.path(slot)
	if err != nil {
		return err
	}
	data, err := save.CodecFor(slot).Encode(snapshot)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+slot+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary save file: %v", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace save file: %v", err)
	}
	return nil
}

func (r *FileRepository) Load(ctx context.Context, slot string) (*save.Snapshot, error) {
	path, err := r.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrNotFound{Slot: slot}
		}
		return nil, fmt.Errorf("failed to read save file: %v", err)
	}
	return save.CodecFor(slot).Decode(data)
}

func (r *FileRepository) Exists(ctx context.Context, slot string) (bool, error) {
	path, err := r.path(slot)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat save file: %v", err)
	}
	return !info.IsDir(), nil
}

func (r *FileRepository) Delete(ctx context.Context, slot string) error {
	path, err := r.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save file: %v", err)
	}
	return nil
}

// List decodes every save in the directory. Unreadable files are skipped.
func (r *FileRepository) List(ctx context.Context) ([]models.SaveSlot, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %v", err)
	}
	slots := []models.SaveSlot{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		snapshot, err := r.Load(ctx, name)
		if err != nil {
			continue
		}
		slots = append(slots, slotOf(name, snapshot))
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	return slots, nil
}

func slotOf(slot string, s *save.Snapshot) models.SaveSlot {
	return models.SaveSlot{
		Slot:     slot,
		Level:    s.CurrentLevelName,
		PlayTime: s.CumulativePlayTimeSeconds,
		SavedAt:  s.SaveTimestamp,
	}
}
