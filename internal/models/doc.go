// Package models defines the core domain models for catchboard.
//
// # Models
//
//   - Participant: a registered tournament entrant, keyed by name
//   - FishSubmission: one recorded catch (species, length, photo, time)
//   - User: the credential record behind a participant's sign-in
//
// Participants are identified by name strings only. A FishSubmission refers to its
// participant by name; nothing in the stores enforces that the participant exists.
// The submission pipeline checks membership before every write.
package models
