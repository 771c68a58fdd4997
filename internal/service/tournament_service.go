// Package service exposes the tournament over Connect RPC with a JSON codec.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/middleware"
	"github.com/mmynk/catchboard/internal/tournament"
	"github.com/mmynk/catchboard/internal/validation"
)

// TournamentService implements the tournament RPCs.
type TournamentService struct {
	backend *tournament.Backend
}

// NewTournamentService creates a TournamentService over the given backend.
func NewTournamentService(backend *tournament.Backend) *TournamentService {
	return &TournamentService{backend: backend}
}

// Handler returns the path prefix and handler to mount on a mux. SubmitFish
// requires a bearer token issued by Register or SignIn.
func (s *TournamentService) Handler() (string, http.Handler) {
	logging := connect.WithInterceptors(middleware.LoggingInterceptor())
	authed := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(s.backend.JWT),
	)

	mux := http.NewServeMux()
	mux.Handle(ListParticipantsProcedure, connect.NewUnaryHandler(
		ListParticipantsProcedure, s.ListParticipants, WithJSON(), logging,
	))
	mux.Handle(RegisterProcedure, connect.NewUnaryHandler(
		RegisterProcedure, s.Register, WithJSON(), logging,
	))
	mux.Handle(SignInProcedure, connect.NewUnaryHandler(
		SignInProcedure, s.SignIn, WithJSON(), logging,
	))
	mux.Handle(SubmitFishProcedure, connect.NewUnaryHandler(
		SubmitFishProcedure, s.SubmitFish, WithJSON(), authed,
	))
	mux.Handle(ListFishProcedure, connect.NewUnaryHandler(
		ListFishProcedure, s.ListFish, WithJSON(), logging,
	))

	return "/" + TournamentServiceName + "/", mux
}

// ListParticipants returns every participant name.
func (s *TournamentService) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	registry := s.backend.NewRegistry(s.backend.NewSession())

	names, err := registry.ListParticipants(ctx)
	if err != nil {
		slog.Error("ListParticipants failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&ListParticipantsResponse{Names: names}), nil
}

// Register creates a credential and the participant document, and returns a
// session token.
func (s *TournamentService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	sess := s.backend.NewSession()
	registry := s.backend.NewRegistry(sess)

	if err := registry.RegisterParticipant(ctx, req.Msg.Name, req.Msg.Email, req.Msg.Password); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&RegisterResponse{
		Token: sess.Token(),
		Email: req.Msg.Email,
	}), nil
}

// SignIn exchanges credentials for a session token.
func (s *TournamentService) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	sess := s.backend.NewSession()
	registry := s.backend.NewRegistry(sess)

	if err := registry.SignIn(ctx, req.Msg.Email, req.Msg.Password); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SignInResponse{
		Token: sess.Token(),
		Email: req.Msg.Email,
	}), nil
}

// SubmitFish runs the submission pipeline.
func (s *TournamentService) SubmitFish(ctx context.Context, req *connect.Request[SubmitFishRequest]) (*connect.Response[SubmitFishResponse], error) {
	msg := req.Msg
	submission := tournament.Submission{
		Name:    msg.Name,
		Length:  msg.Length,
		Species: msg.Species,
	}
	if msg.ImageFilename != "" || msg.ImageContentType != "" || len(msg.ImageData) > 0 {
		submission.Image = &tournament.Image{
			Filename:    msg.ImageFilename,
			ContentType: msg.ImageContentType,
			Data:        msg.ImageData,
		}
	}

	fish, err := s.backend.NewPipeline().Submit(ctx, submission)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&SubmitFishResponse{Submission: *fish}), nil
}

// ListFish returns the rendered fish table.
func (s *TournamentService) ListFish(ctx context.Context, req *connect.Request[ListFishRequest]) (*connect.Response[ListFishResponse], error) {
	table := s.backend.NewTable()
	if err := table.Refresh(ctx); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	rows := table.Rows()
	resp := &ListFishResponse{Rows: make([]FishRow, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = FishRow(row)
	}

	return connect.NewResponse(resp), nil
}

// toConnectError maps tournament and auth errors to Connect codes, keeping the
// user-facing message intact.
func toConnectError(err error) error {
	var failure *validation.Failure
	switch {
	case errors.As(err, &failure):
		if failure.Err != nil {
			return connect.NewError(connect.CodeUnavailable, failure)
		}
		return connect.NewError(connect.CodeInvalidArgument, failure)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
