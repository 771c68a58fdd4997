package tournament

import (
	"context"
	"slices"

	"github.com/mmynk/catchboard/internal/validation"
)

// Rule names, in evaluation order.
const (
	RulePresence   = "presence"
	RuleMembership = "membership"
	RuleNumeric    = "numeric"
	RuleImageType  = "image-type"
)

// User-facing validation messages.
const (
	MsgAllFieldsRequired = "All fields are required."
	MsgNotParticipant    = "name must be a participant in the tournament."
	MsgParticipantsFetch = "Failed to fetch participants."
	MsgLengthNotNumber   = "Length must be a number."
	MsgFileMustBeImage   = "File must be an image."
)

// Image is the uploaded photo of a catch.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is the raw content of the fish submission form.
type Submission struct {
	Name    string
	Length  string
	Species string
	Image   *Image
}

// SubmissionRules returns the ordered rules a submission must pass before any
// write. The membership rule re-fetches the participant list on every run.
func SubmissionRules(participants ParticipantLister) []validation.Rule[Submission] {
	return []validation.Rule[Submission]{
		{Name: RulePresence, Check: checkPresence},
		{Name: RuleMembership, Check: membershipCheck(participants)},
		{Name: RuleNumeric, Check: checkNumeric},
		{Name: RuleImageType, Check: checkImageType},
	}
}

func checkPresence(_ context.Context, s Submission) *validation.Failure {
	if s.Name == "" || s.Length == "" || s.Species == "" || s.Image == nil {
		return validation.Reject(MsgAllFieldsRequired)
	}
	return nil
}

func membershipCheck(participants ParticipantLister) func(context.Context, Submission) *validation.Failure {
	return func(ctx context.Context, s Submission) *validation.Failure {
		names, err := participantNames(ctx, participants)
		if err != nil {
			return validation.RejectErr(MsgParticipantsFetch, err)
		}
		if !slices.Contains(names, s.Name) {
			return validation.Reject(MsgNotParticipant)
		}
		return nil
	}
}

func checkNumeric(_ context.Context, s Submission) *validation.Failure {
	if !validation.IsNumeric(s.Length) {
		return validation.Reject(MsgLengthNotNumber)
	}
	return nil
}

func checkImageType(_ context.Context, s Submission) *validation.Failure {
	if !validation.IsImageType(s.Image.ContentType) {
		return validation.Reject(MsgFileMustBeImage)
	}
	return nil
}
