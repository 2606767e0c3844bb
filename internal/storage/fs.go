package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FS stores one JSON document per day under a data directory.
type FS struct {
	dataDir string
}

// NewFS creates the data directory if needed and returns a file-backed store.
func NewFS(dataDir string) (*FS, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}
	return &FS{dataDir: dataDir}, nil
}

func (s *FS) dayFilePath(date time.Time) string {
	return filepath.Join(s.dataDir, date.Format(DateLayout)+".json")
}

// LoadDay reads a day's log; a missing file yields an empty log for that day.
func (s *FS) LoadDay(date time.Time) (*DayLog, error) {
	path := s.dayFilePath(date)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewDayLog(date), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var day DayLog
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	return &day, nil
}

// SaveDay writes the whole day document, overwriting any previous version.
func (s *FS) SaveDay(day *DayLog) error {
	date, err := time.Parse(DateLayout, day.Date)
	if err != nil {
		return fmt.Errorf("invalid day date %q: %w", day.Date, err)
	}
	path := s.dayFilePath(date)

	data, err := json.MarshalIndent(day, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialize day log: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}

	return nil
}

// IterDays returns every stored day log, sorted by date ascending.
func (s *FS) IterDays() ([]*DayLog, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("could not read data directory: %w", err)
	}

	var days []*DayLog
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		// Skip non-day documents such as memory.json.
		name := strings.TrimSuffix(entry.Name(), ".json")
		if _, err := time.Parse(DateLayout, name); err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", entry.Name(), err)
		}

		var day DayLog
		if err := json.Unmarshal(data, &day); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", entry.Name(), err)
		}
		days = append(days, &day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days, nil
}
