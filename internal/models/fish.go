package models

import (
	"fmt"
	"time"
)

// FishSubmission is one recorded catch.
type FishSubmission struct {
	// ID is the document key, see FishKey.
	ID string `firestore:"-" json:"id"`

	// Name references Participant.Name. Not enforced by any store.
	Name string `firestore:"name" json:"name"`

	Species string `firestore:"species" json:"species"`

	// Inches is the length exactly as the participant typed it.
	Inches string `firestore:"inches" json:"inches"`

	// ImageURL is the durable download URL of the stored photo.
	ImageURL string `firestore:"imageUrl" json:"imageUrl"`

	SubmittedAt time.Time `firestore:"submittedAt" json:"submittedAt"`
}

// FishKey returns the document key for a submission made by name at t.
// Two submissions by the same name in the same millisecond share a key.
func FishKey(name string, t time.Time) string {
	return fmt.Sprintf("%s-%d", name, t.UnixMilli())
}

// FishImageKey returns the object storage key for a submission's photo.
func FishImageKey(name string, t time.Time) string {
	return "fish/" + FishKey(name, t)
}
