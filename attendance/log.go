package attendance

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var csvHeader = []string{"date", "slot", "roll_no", "status", "timestamp"}

// Row is one attendance log entry as stored on disk.
type Row struct {
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	RollNumber string `json:"roll_no"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
}

// Log appends attendance rows to one CSV file per subject. Rows are only
// ever appended, never rewritten; the header is written once per file.
type Log struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
	log *slog.Logger
}

func NewLog(dir string) *Log {
	return &Log{
		dir: dir,
		now: time.Now,
		log: slog.Default().With("component", "attendance"),
	}
}

func (l *Log) path(subject string) string {
	return filepath.Join(l.dir, subject+".csv")
}

// Append writes one row to the subject's log.
func (l *Log) Append(subject, date, slotTime, roll, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("creating attendance dir: %w", err)
	}

	fname := l.path(subject)
	_, statErr := os.Stat(fname)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening attendance log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{date, slotTime, roll, status, l.now().Format(time.RFC3339)}); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	l.log.Info("attendance recorded", "subject", subject, "roll", roll, "status", status)
	return nil
}

// Rows reads the subject's log back, optionally filtered by date
// (YYYY-MM-DD). A subject with no log yet yields an empty slice.
func (l *Log) Rows(subject, date string) ([]Row, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path(subject))
	if err != nil {
		if os.IsNotExist(err) {
			return []Row{}, nil
		}
		return nil, fmt.Errorf("opening attendance log: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading attendance log: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 5 {
			continue // header
		}
		if date != "" && rec[0] != date {
			continue
		}
		rows = append(rows, Row{
			Date:       rec[0],
			Slot:       rec[1],
			RollNumber: rec[2],
			Status:     rec[3],
			Timestamp:  rec[4],
		})
	}
	return rows, nil
}
