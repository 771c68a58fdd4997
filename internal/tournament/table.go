package tournament

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/catchboard/internal/metrics"
)

// TimeLayout is the hour:minute layout used for the submission time column.
const TimeLayout = "3:04 PM"

// Row is one rendered line of the fish table.
type Row struct {
	ID       string
	Name     string
	Species  string
	Inches   string
	ImageURL string
	Time     string
}

// Table holds the rendered fish table and its image dialog.
type Table struct {
	fish     FishLister
	location *time.Location
	recorder Recorder

	mu     sync.Mutex
	rows   []Row
	dialog *Row
}

// NewTable creates an empty table. Times are shown in loc (time.Local when nil).
func NewTable(fish FishLister, loc *time.Location, recorder Recorder) *Table {
	if loc == nil {
		loc = time.Local
	}
	return &Table{
		fish:     fish,
		location: loc,
		recorder: orNop(recorder),
	}
}

// Refresh fetches every submission and replaces all rows with them, in fetch
// order. When the fetch fails the current rows are left as they were.
func (t *Table) Refresh(ctx context.Context) error {
	fish, err := t.fish.ListFish(ctx)
	if err != nil {
		t.recorder.RecordTableRefresh(metrics.OutcomeError)
		slog.Error("Fish table refresh failed", "error", err)
		return err
	}

	rows := make([]Row, 0, len(fish))
	for _, f := range fish {
		rows = append(rows, Row{
			ID:       f.ID,
			Name:     f.Name,
			Species:  f.Species,
			Inches:   f.Inches,
			ImageURL: f.ImageURL,
			Time:     f.SubmittedAt.In(t.location).Format(TimeLayout),
		})
	}

	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()

	t.recorder.RecordTableRefresh(metrics.OutcomeSuccess)
	slog.Debug("Fish table refreshed", "rows", len(rows))
	return nil
}

// Rows returns a copy of the current rows.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Open shows the image dialog for the row with the given ID, replacing any dialog
// already open. It reports false, and leaves the dialog unchanged, when no row
// has that ID.
func (t *Table) Open(id string) (Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if t.rows[i].ID == id {
			row := t.rows[i]
			t.dialog = &row
			return row, true
		}
	}
	return Row{}, false
}

// Dialog returns the row whose image dialog is open.
func (t *Table) Dialog() (Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dialog == nil {
		return Row{}, false
	}
	return *t.dialog, true
}

// Close closes the image dialog.
func (t *Table) Close() {
	t.mu.Lock()
	t.dialog = nil
	t.mu.Unlock()
}
