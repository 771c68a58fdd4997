package service

import "github.com/mmynk/catchboard/internal/models"

// Service and procedure names.
const (
	TournamentServiceName = "tournament.v1.TournamentService"

	ListParticipantsProcedure = "/" + TournamentServiceName + "/ListParticipants"
	RegisterProcedure         = "/" + TournamentServiceName + "/Register"
	SignInProcedure           = "/" + TournamentServiceName + "/SignIn"
	SubmitFishProcedure       = "/" + TournamentServiceName + "/SubmitFish"
	ListFishProcedure         = "/" + TournamentServiceName + "/ListFish"
)

type ListParticipantsRequest struct{}

type ListParticipantsResponse struct {
	Names []string `json:"names"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// SubmitFishRequest carries the submission form. The image counts as missing
// when filename, content type and data are all empty.
type SubmitFishRequest struct {
	Name             string `json:"name"`
	Length           string `json:"length"`
	Species          string `json:"species"`
	ImageFilename    string `json:"imageFilename,omitempty"`
	ImageContentType string `json:"imageContentType,omitempty"`
	ImageData        []byte `json:"imageData,omitempty"`
}

type SubmitFishResponse struct {
	Submission models.FishSubmission `json:"submission"`
}

type ListFishRequest struct{}

// FishRow is one row of the rendered fish table.
type FishRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Inches   string `json:"inches"`
	ImageURL string `json:"imageUrl"`
	Time     string `json:"time"`
}

type ListFishResponse struct {
	Rows []FishRow `json:"rows"`
}
