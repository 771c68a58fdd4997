package tournament

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/catchboard/internal/models"
)

func seededFish() []models.FishSubmission {
	return []models.FishSubmission{
		{
			ID:          "Alice-1",
			Name:        "Alice",
			Species:     "Walleye",
			Inches:      "12.5",
			ImageURL:    "https://objects.test/fish/Alice-1",
			SubmittedAt: time.Date(2024, 6, 1, 9, 7, 0, 0, time.UTC),
		},
		{
			ID:          "Bob-2",
			Name:        "Bob",
			Species:     "Northern Pike",
			Inches:      "30",
			ImageURL:    "https://objects.test/fish/Bob-2",
			SubmittedAt: time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC),
		},
	}
}

func TestTable_Refresh(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	recorder := newCountingRecorder()
	table := NewTable(store, time.UTC, recorder)

	require.NoError(t, table.Refresh(context.Background()))

	want := []Row{
		{
			ID:       "Alice-1",
			Name:     "Alice",
			Species:  "Walleye",
			Inches:   "12.5",
			ImageURL: "https://objects.test/fish/Alice-1",
			Time:     "9:07 AM",
		},
		{
			ID:       "Bob-2",
			Name:     "Bob",
			Species:  "Northern Pike",
			Inches:   "30",
			ImageURL: "https://objects.test/fish/Bob-2",
			Time:     "2:30 PM",
		},
	}
	assert.Equal(t, want, table.Rows())
	assert.Equal(t, 1, recorder.count("refresh:success"))
}

func TestTable_Refresh_UsesLocation(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()[:1]
	table := NewTable(store, time.FixedZone("UTC-5", -5*60*60), nil)

	require.NoError(t, table.Refresh(context.Background()))
	assert.Equal(t, "4:07 AM", table.Rows()[0].Time)
}

func TestTable_Refresh_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	table := NewTable(store, time.UTC, nil)

	require.NoError(t, table.Refresh(context.Background()))
	first := table.Rows()
	require.NoError(t, table.Refresh(context.Background()))

	assert.Equal(t, first, table.Rows(), "refresh replaces rows rather than appending")
}

func TestTable_Refresh_Empty(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	table := NewTable(store, time.UTC, nil)
	require.NoError(t, table.Refresh(context.Background()))

	store.fish = nil
	require.NoError(t, table.Refresh(context.Background()))
	assert.Empty(t, table.Rows())
}

func TestTable_Refresh_ErrorKeepsRows(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	recorder := newCountingRecorder()
	table := NewTable(store, time.UTC, recorder)
	require.NoError(t, table.Refresh(context.Background()))
	before := table.Rows()

	store.listFishErr = errBackend
	err := table.Refresh(context.Background())
	require.ErrorIs(t, err, errBackend)

	assert.Equal(t, before, table.Rows())
	assert.Equal(t, 1, recorder.count("refresh:error"))
}

func TestTable_Rows_ReturnsCopy(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	table := NewTable(store, time.UTC, nil)
	require.NoError(t, table.Refresh(context.Background()))

	rows := table.Rows()
	rows[0].Name = "Mallory"

	assert.Equal(t, "Alice", table.Rows()[0].Name)
}

func TestTable_Dialog(t *testing.T) {
	store := newFakeStore()
	store.fish = seededFish()
	table := NewTable(store, time.UTC, nil)
	require.NoError(t, table.Refresh(context.Background()))

	_, open := table.Dialog()
	assert.False(t, open, "no dialog before any row is opened")

	row, ok := table.Open("Alice-1")
	require.True(t, ok)
	assert.Equal(t, "https://objects.test/fish/Alice-1", row.ImageURL)

	// Opening another row replaces the open dialog.
	_, ok = table.Open("Bob-2")
	require.True(t, ok)
	dialog, open := table.Dialog()
	require.True(t, open)
	assert.Equal(t, "Bob-2", dialog.ID)

	_, ok = table.Open("missing")
	assert.False(t, ok)
	dialog, open = table.Dialog()
	require.True(t, open)
	assert.Equal(t, "Bob-2", dialog.ID, "unknown id leaves the dialog unchanged")

	table.Close()
	_, open = table.Dialog()
	assert.False(t, open)

	// Closing twice is harmless.
	table.Close()
	_, open = table.Dialog()
	assert.False(t, open)
}
