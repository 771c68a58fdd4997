package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls a TournamentService over Connect.
type Client struct {
	listParticipants *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	register         *connect.Client[RegisterRequest, RegisterResponse]
	signIn           *connect.Client[SignInRequest, SignInResponse]
	submitFish       *connect.Client[SubmitFishRequest, SubmitFishResponse]
	listFish         *connect.Client[ListFishRequest, ListFishResponse]
}

// NewClient creates a client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &Client{
		listParticipants: connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+ListParticipantsProcedure, opts...),
		register:         connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+RegisterProcedure, opts...),
		signIn:           connect.NewClient[SignInRequest, SignInResponse](httpClient, baseURL+SignInProcedure, opts...),
		submitFish:       connect.NewClient[SubmitFishRequest, SubmitFishResponse](httpClient, baseURL+SubmitFishProcedure, opts...),
		listFish:         connect.NewClient[ListFishRequest, ListFishResponse](httpClient, baseURL+ListFishProcedure, opts...),
	}
}

// ListParticipants calls TournamentService.ListParticipants.
func (c *Client) ListParticipants(ctx context.Context) (*ListParticipantsResponse, error) {
	resp, err := c.listParticipants.CallUnary(ctx, connect.NewRequest(&ListParticipantsRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Register calls TournamentService.Register.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.register.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// SignIn calls TournamentService.SignIn.
func (c *Client) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	resp, err := c.signIn.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// SubmitFish calls TournamentService.SubmitFish with the given session token.
func (c *Client) SubmitFish(ctx context.Context, token string, req *SubmitFishRequest) (*SubmitFishResponse, error) {
	r := connect.NewRequest(req)
	if token != "" {
		r.Header().Set("Authorization", "Bearer "+token)
	}
	resp, err := c.submitFish.CallUnary(ctx, r)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// ListFish calls TournamentService.ListFish.
func (c *Client) ListFish(ctx context.Context) (*ListFishResponse, error) {
	resp, err := c.listFish.CallUnary(ctx, connect.NewRequest(&ListFishRequest{}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
