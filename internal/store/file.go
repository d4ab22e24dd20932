// Storage file I/O. Writes go through the temp-file, fsync, rename pattern
// so the previous file is only replaced once the new content is complete.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and decodes the storage file at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data)
}

// Save encodes the store and writes it to path atomically, creating parent
// directories as needed. Persistence is always an explicit call: mutations
// never write by themselves, so several changes can share one write.
func Save(path string, s *Store) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Initialize writes an empty store to path when no file exists yet.
func Initialize(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return Save(path, New())
}

// LoadAndRepair loads the storage file and runs the repair pass with the
// given resolver. The returned action list tells the caller whether
// anything changed and needs persisting; repair itself never writes.
func LoadAndRepair(path string, r Resolver) (*Store, []RepairAction, error) {
	s, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	repaired, actions, err := Repair(s, r)
	if err != nil {
		return nil, nil, err
	}
	return repaired, actions, nil
}
