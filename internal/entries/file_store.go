package entries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type Option func(*FileStore)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	s := &FileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUnlocked()
}

func (s *FileStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveUnlocked(records)
}

func (s *FileStore) Add(name, email, message string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.loadUnlocked()
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:        len(records) + 1,
		Name:      name,
		Email:     email,
		Message:   message,
		Timestamp: NewTimestamp(s.now()),
	}
	records = append(records, rec)
	if err := s.saveUnlocked(records); err != nil {
		return Record{}, err
	}
	log.Printf("💾 Saved entry %d from %s", rec.ID, rec.Email)
	return rec, nil
}

func (s *FileStore) loadUnlocked() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// malformed contents are dropped; the next save overwrites them
		log.Printf("⚠️ Store %s is not a valid JSON array, starting empty: %v", s.path, err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *FileStore) saveUnlocked(records []Record) (err error) {
	if records == nil {
		records = []Record{}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	return nil
}
