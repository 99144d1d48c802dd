package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"formdesk/internal/entries"
	"formdesk/internal/stats"
)

// Snapshotter copies the current store contents into timestamped files.
type Snapshotter struct {
	store entries.Store
	dir   string
	now   func() time.Time
}

func NewSnapshotter(store entries.Store, dir string) *Snapshotter {
	return &Snapshotter{store: store, dir: dir, now: time.Now}
}

// Snapshot writes dir/entries-YYYYMMDD-HHMMSS.json and returns its path.
// The live store file is only read.
func (s *Snapshotter) Snapshot(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	records, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("load store: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backup dir: %w", err)
	}
	now := s.now().UTC()
	path := filepath.Join(s.dir, fmt.Sprintf("entries-%s.json", now.Format("20060102-150405")))
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	log.Printf("🗄️ Snapshot of %d entries written to %s", len(records), path)
	log.Print(stats.AnalyzeDay(records, now).ReportSummary())
	return path, nil
}

// Run adapts Snapshot to Scheduler.SetJobFunction.
func (s *Snapshotter) Run(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}
