// Package snapshot flushes the in-memory record backend to a compressed file
// and restores it on startup.
package snapshot

import (
	"elevate/internal/providers"
	"elevate/internal/snapshot/interfaces"
	"elevate/internal/storage"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

const formatVersion = 1

// envelope is the on-disk layout of a snapshot.
type envelope struct {
	Version int                        `json:"version"`
	SavedAt time.Time                  `json:"savedAt"`
	Records map[string]json.RawMessage `json:"records"`
}

type FileManager struct {
	source     storage.Snapshotter
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, source storage.Snapshotter, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		source:     source,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	jsonData, err := json.Marshal(envelope{
		Version: formatVersion,
		SavedAt: time.Now().UTC(),
		Records: f.source.Snapshot(),
	})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(fileName); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the source from fileName. A missing file leaves the
// source untouched.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(decompressedData, &env); err == nil && env.Records != nil {
		if env.Version > formatVersion {
			return fmt.Errorf("snapshot version %d is newer than supported %d", env.Version, formatVersion)
		}
		f.source.Restore(env.Records)
		f.logger.Infof(providers.TypeStore, "Restored %d collections saved at %s", len(env.Records), env.SavedAt.Format(time.RFC3339))
		return nil
	}

	// Snapshots without an envelope hold the key map directly.
	f.logger.Warnf(providers.TypeStore, "Snapshot has no envelope, trying bare record map")
	var records map[string]json.RawMessage
	if err := json.Unmarshal(decompressedData, &records); err != nil {
		f.logger.Warnf(providers.TypeStore, "Snapshot could not be decoded")
		return err
	}
	f.source.Restore(records)
	return nil
}
