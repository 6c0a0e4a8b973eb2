package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"rewardsprint/internal/storage"
	"rewardsprint/internal/store"
)

// ErrNothingToExport is returned when the storage key holds no state
var ErrNothingToExport = errors.New("no persisted state to export")

// BackupData is the file format written by Export
type BackupData struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Backend    string      `json:"backend"`
	Key        string      `json:"key"`
	State      store.State `json:"state"`
}

// BackupService copies the persisted state between a storage backend and a
// JSON file. A running server only reads storage at startup, so an import is
// picked up on its next restart.
type BackupService struct {
	storage storage.Storage
	key     string
	now     func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(s storage.Storage, key string) *BackupService {
	return &BackupService{storage: s, key: key, now: time.Now}
}

// Export writes a backup of the persisted state to outputPath
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Printf("Starting export of %s from %s storage...", s.key, s.storage.Name())

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	log.Printf("State exported successfully to %s", outputPath)
	if backup.State.Family != nil {
		f := backup.State.Family
		log.Printf("Exported: %d children, %d tasks, %d rewards, %d redemptions, %d completed tasks",
			len(f.Children), len(f.Tasks), len(f.Rewards), len(f.Redemptions), len(f.CompletedTasks))
	}
	return nil
}

// ExportToWriter encodes the persisted state as an indented backup document
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (*BackupData, error) {
	blob, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	if !ok {
		return nil, ErrNothingToExport
	}

	state, err := store.UnmarshalState([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to decode persisted state: %w", err)
	}

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: s.now().UTC(),
		Backend:    s.storage.Name(),
		Key:        s.key,
		State:      state,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores the persisted state from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader replaces the persisted state with the one in the backup
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	blob, err := store.MarshalState(backup.State)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(blob)); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	log.Printf("Import into %s storage completed successfully", s.storage.Name())
	return nil
}

// Reset removes the persisted state so the next server start begins from the
// logged-out default
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	log.Printf("Removed %s from %s storage", s.key, s.storage.Name())
	return nil
}
