package models

// Participant is a tournament entrant. Name is unique and doubles as the
// document key in the participants collection.
type Participant struct {
	Name string `firestore:"name" json:"name"`
}
