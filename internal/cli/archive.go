package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tycoon/internal/leaderboard"
)

// Offline games keep their final results in ~/.tyc/history.json so a local
// hall of fame works without a server.

func archivePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

func LoadArchive() ([]leaderboard.Entry, error) {
	path, err := archivePath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []leaderboard.Entry{}, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return []leaderboard.Entry{}, nil
	}
	var out []leaderboard.Entry
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func SaveArchive(entries []leaderboard.Entry) error {
	path, err := archivePath()
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func ArchiveRun(e leaderboard.Entry) error {
	entries, err := LoadArchive()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return SaveArchive(entries)
}
