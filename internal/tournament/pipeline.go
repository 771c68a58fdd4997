package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/catchboard/internal/metrics"
	"github.com/mmynk/catchboard/internal/models"
	"github.com/mmynk/catchboard/internal/storage"
	"github.com/mmynk/catchboard/internal/validation"
)

// ErrPersist marks failures after validation passed: the photo upload, URL
// resolution or document write. A photo uploaded before a failed write is not
// removed.
var ErrPersist = errors.New("failed to persist submission")

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Pipeline validates and persists fish submissions.
type Pipeline struct {
	fish     FishWriter
	objects  storage.ObjectStore
	rules    []validation.Rule[Submission]
	clock    Clock
	recorder Recorder
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithClock sets the clock used for keys and submission times.
func WithClock(clock Clock) PipelineOption {
	return func(p *Pipeline) { p.clock = clock }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) PipelineOption {
	return func(p *Pipeline) { p.recorder = orNop(r) }
}

// NewPipeline creates a submission pipeline.
func NewPipeline(participants ParticipantLister, fish FishWriter, objects storage.ObjectStore, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fish:     fish,
		objects:  objects,
		rules:    SubmissionRules(participants),
		clock:    time.Now,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit validates s and, when every rule passes, uploads the photo and writes the
// submission. A rejected submission returns a *validation.Failure and writes
// nothing. Persist failures wrap ErrPersist.
func (p *Pipeline) Submit(ctx context.Context, s Submission) (*models.FishSubmission, error) {
	slog.Info("SubmitFish request received",
		"name", s.Name,
		"species", s.Species,
		"length", s.Length,
	)

	if f := validation.Run(ctx, p.rules, s); f != nil {
		p.recorder.RecordSubmission(metrics.OutcomeRejected)
		p.recorder.RecordValidationFailure(f.Rule)
		if f.Err != nil {
			slog.Error("Submission validation failed", "rule", f.Rule, "error", f.Err)
		} else {
			slog.Info("Submission rejected", "rule", f.Rule, "reason", f.Message)
		}
		return nil, f
	}

	start := time.Now()
	fish, err := p.persist(ctx, s)
	p.recorder.ObservePersist(time.Since(start).Seconds())
	if err != nil {
		p.recorder.RecordSubmission(metrics.OutcomeError)
		slog.Error("SubmitFish failed", "name", s.Name, "error", err)
		return nil, err
	}

	p.recorder.RecordSubmission(metrics.OutcomeSuccess)
	slog.Info("SubmitFish successful", "key", fish.ID, "name", fish.Name)
	return fish, nil
}

func (p *Pipeline) persist(ctx context.Context, s Submission) (*models.FishSubmission, error) {
	now := p.clock()
	imageKey := models.FishImageKey(s.Name, now)

	if err := p.objects.Upload(ctx, imageKey, s.Image.ContentType, s.Image.Data); err != nil {
		return nil, fmt.Errorf("%w: failed to upload image: %w", ErrPersist, err)
	}

	imageURL, err := p.objects.DownloadURL(ctx, imageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve image URL: %w", ErrPersist, err)
	}

	fish := &models.FishSubmission{
		ID:          models.FishKey(s.Name, now),
		Name:        s.Name,
		Species:     s.Species,
		Inches:      s.Length,
		ImageURL:    imageURL,
		SubmittedAt: now,
	}

	if err := p.fish.PutFish(ctx, fish.ID, *fish); err != nil {
		return nil, fmt.Errorf("%w: failed to write submission: %w", ErrPersist, err)
	}

	return fish, nil
}
