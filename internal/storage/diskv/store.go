// Package diskv stores each day as a pretty-printed JSON file laid out as
// <base>/<year>/<month>/<day>.json.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/utils"
)

const (
	preferencesKey = "preferences"
	fileExt        = ".json"
	tempDirName    = ".tmp"
)

type Store struct {
	base string
	d    *diskv.Diskv
}

func NewStore(base string) *Store {
	return &Store{base: base}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:          s.base,
		TempDir:           filepath.Join(s.base, tempDirName),
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		// no cache: files may be edited or synced from outside the process
		CacheSizeMax: 0,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.base, tempDirName), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.base)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", storage.ErrNotInitialized, s.base)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.base)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.base
}

func (s *Store) LoadRecord(ctx context.Context, date string) (models.DayRecord, error) {
	if s.d == nil {
		return models.DayRecord{}, storage.ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return models.DayRecord{}, err
	}

	data, err := s.d.Read(date)
	if errors.Is(err, fs.ErrNotExist) {
		return models.EmptyDayRecord(date), nil
	}
	if err != nil {
		return models.DayRecord{}, fmt.Errorf("read %s: %w", date, err)
	}

	var rec models.DayRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.DayRecord{}, fmt.Errorf("decode %s: %w", date, err)
	}
	rec.Date = date
	if rec.Todos == nil {
		rec.Todos = []models.TaskItem{}
	}
	return rec, nil
}

func (s *Store) SaveRecord(ctx context.Context, rec models.DayRecord) error {
	if s.d == nil {
		return storage.ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.Todos == nil {
		rec.Todos = []models.TaskItem{}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := s.d.Write(rec.Date, data); err != nil {
		return fmt.Errorf("write %s: %w", rec.Date, err)
	}
	return nil
}

func (s *Store) ListDates(ctx context.Context) ([]string, error) {
	if s.d == nil {
		return nil, storage.ErrNotInitialized
	}
	var dates []string
	for key := range s.d.Keys(ctx.Done()) {
		if utils.ValidateDateKey(key) {
			dates = append(dates, key)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(dates)
	return dates, nil
}

func (s *Store) GetPreferences(ctx context.Context) (models.Preferences, error) {
	if s.d == nil {
		return models.Preferences{}, storage.ErrNotInitialized
	}
	data, err := s.d.Read(preferencesKey)
	if errors.Is(err, fs.ErrNotExist) {
		return models.DefaultPreferences(), nil
	}
	if err != nil {
		return models.Preferences{}, err
	}
	var prefs models.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Normalize(), nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if s.d == nil {
		return storage.ErrNotInitialized
	}
	data, err := json.MarshalIndent(prefs.Normalize(), "", "  ")
	if err != nil {
		return err
	}
	return s.d.Write(preferencesKey, data)
}

// keyToPath maps "2026-10-17" to 2026/10/17.json; other keys live at the root.
func keyToPath(key string) *diskv.PathKey {
	if utils.ValidateDateKey(key) {
		parts := strings.Split(key, "-")
		return &diskv.PathKey{Path: parts[:2], FileName: parts[2] + fileExt}
	}
	return &diskv.PathKey{Path: []string{}, FileName: key + fileExt}
}

func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, fileExt)
	if len(pk.Path) == 0 {
		return name
	}
	return strings.Join(append(append([]string{}, pk.Path...), name), "-")
}

// keyForFile derives the key for an absolute file path under base, or "".
func (s *Store) keyForFile(path string) string {
	rel, err := filepath.Rel(s.base, path)
	if err != nil || rel == "." || !strings.HasSuffix(rel, fileExt) {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if parts[0] == tempDirName {
		return ""
	}
	key := pathToKey(&diskv.PathKey{Path: parts[:len(parts)-1], FileName: parts[len(parts)-1]})
	if key == preferencesKey || utils.ValidateDateKey(key) {
		return key
	}
	return ""
}

var _ storage.Provider = (*Store)(nil)

// DefaultPath is where the diskv backend keeps its files when none is configured.
func DefaultPath() (string, error) {
	return utils.ExpandPath(constants.DefaultDiskvPath)
}
