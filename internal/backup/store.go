package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
)

const timestampLayout = "20060102_150405"

// Store persists snapshots as one JSON document per backup operation.
// Files are never updated in place.
type Store struct {
	dir string
}

type Info struct {
	Name     string
	Path     string
	Products int
	ModTime  time.Time
}

func NewStore(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = "price_backups"
	}
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Write saves the snapshot to <dir>/<label>_<YYYYMMDD_HHMMSS>.json and
// returns the file path.
func (s *Store) Write(snapshot model.Snapshot, label string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	label = SanitizeLabel(label)
	if label == "" {
		label = "bulk_backup"
	}
	name := fmt.Sprintf("%s_%s.json", label, time.Now().Format(timestampLayout))
	path := filepath.Join(s.dir, name)

	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Load reads a snapshot wholesale and validates it before returning.
func (s *Store) Load(path string) (model.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot model.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", filepath.Base(path), err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", filepath.Base(path), err)
	}
	return snapshot, nil
}

// List returns available backups newest first. Files that cannot be
// parsed still appear, with a zero product count.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info := Info{
			Name: entry.Name(),
			Path: filepath.Join(s.dir, entry.Name()),
		}
		if fi, err := entry.Info(); err == nil {
			info.ModTime = fi.ModTime()
		}
		var snapshot model.Snapshot
		if raw, err := os.ReadFile(info.Path); err == nil {
			if err := json.Unmarshal(raw, &snapshot); err == nil {
				info.Products = len(snapshot)
			}
		}
		infos = append(infos, info)
	}

	// Timestamps are embedded in the names, so a reverse name sort puts
	// the newest backup first.
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name > infos[j].Name
	})
	return infos, nil
}

// SanitizeLabel lowercases a label and keeps only characters that are
// safe in a file name.
func SanitizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
