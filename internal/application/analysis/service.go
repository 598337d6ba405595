package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

// DefaultCallTimeout bounds each external provider call. A timeout is
// treated exactly like any other transport error and triggers the fallback.
const DefaultCallTimeout = 15 * time.Second

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// CredentialSource resolves the provider keys for one invocation.
type CredentialSource interface {
	Resolve() domain.Credentials
}

// Service implements the image-analysis pipeline use-case. Stages are
// injected ports; the service holds the sequencing and the masking policy
// (a failing provider call is substituted with its fallback, never
// surfaced). Safe for concurrent use; invocations share no mutable state.
type Service struct {
	Host        domain.ImageHost
	Finder      domain.MatchFinder
	Appraiser   domain.Appraiser
	Creds       CredentialSource
	Fallback    *domain.Annotator
	History     domain.History // optional, may be nil
	Log         *zap.Logger
	Clock       Clock
	CallTimeout time.Duration
}

type AnalyzeCommand struct {
	ImageData string
}

type AnalyzeResult struct {
	Success  bool          `json:"success"`
	ImageURL string        `json:"imageUrl"`
	Results  []domain.Item `json:"results"`
}

// Analyze runs the full pipeline: upload, discovery, filter, valuation.
// Credentials are resolved once; if any key is missing the whole invocation
// runs on the fallback path. The only client-facing errors are a missing
// payload and the guarded empty-URL case.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	if cmd.ImageData == "" {
		return nil, domain.ErrNoImageData
	}

	start := s.Clock.Now()
	creds := s.Creds.Resolve()
	degraded := creds.Incomplete()
	s.Log.Info("starting image analysis",
		zap.Bool("degraded", degraded),
		zap.Bool("imgbb_key", creds.ImgBB != ""),
		zap.Bool("searchapi_key", creds.SearchAPI != ""),
		zap.Bool("deepseek_key", creds.DeepSeek != ""),
	)

	hosted := s.uploadStage(ctx, cmd.ImageData, creds.ImgBB, degraded)
	if hosted.URL == "" {
		// not reachable through the fallback, guarded anyway
		return nil, fmt.Errorf("image hosting returned an empty URL")
	}

	raw := s.discoveryStage(ctx, hosted.URL, creds.SearchAPI, degraded)
	filtered := domain.Filter(raw)
	results := s.valuationStage(ctx, filtered, creds.DeepSeek, degraded)

	s.record(hosted.URL, len(results), degraded, start)

	return &AnalyzeResult{Success: true, ImageURL: hosted.URL, Results: results}, nil
}

func (s *Service) uploadStage(ctx context.Context, imageData, key string, degraded bool) domain.HostedImage {
	if !degraded {
		cctx, cancel := s.bound(ctx)
		hosted, err := s.Host.Upload(cctx, imageData, key)
		cancel()
		if err == nil && hosted.URL != "" {
			return hosted
		}
		s.Log.Warn("image upload failed, using local data URL", zap.Error(err))
	}
	return domain.FallbackHostedImage(imageData)
}

func (s *Service) discoveryStage(ctx context.Context, imageURL, key string, degraded bool) []domain.Candidate {
	if !degraded {
		cctx, cancel := s.bound(ctx)
		found, err := s.Finder.Search(cctx, imageURL, key)
		cancel()
		if err == nil {
			return found
		}
		s.Log.Warn("reverse image search failed, using canned candidates", zap.Error(err))
	}
	return domain.FallbackCandidates()
}

func (s *Service) valuationStage(ctx context.Context, items []domain.Candidate, key string, degraded bool) []domain.Item {
	if !degraded {
		cctx, cancel := s.bound(ctx)
		appraised, err := s.Appraiser.Appraise(cctx, items, key)
		cancel()
		if err == nil {
			return appraised
		}
		s.Log.Warn("valuation provider failed, annotating locally", zap.Error(err))
	}
	return s.Fallback.Annotate(items)
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// record persists one history row when a History port is configured. A
// failing save never fails the invocation.
func (s *Service) record(imageURL string, itemCount int, degraded bool, start time.Time) {
	if s.History == nil {
		return
	}
	now := s.Clock.Now()
	rec := &domain.Record{
		ID:         domain.AnalysisID(uuid.New().String()),
		ImageURL:   imageURL,
		ItemCount:  itemCount,
		Degraded:   degraded,
		DurationMS: now.Sub(start).Milliseconds(),
		CreatedAt:  now,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.History.Save(ctx, rec); err != nil {
		s.Log.Warn("failed to save analysis history", zap.Error(err))
	}
}

// Latest exposes the saved history for the dashboard.
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if s.History == nil {
		return nil, nil
	}
	return s.History.Latest(ctx, limit)
}
