// Package loader reads businesses, assessments, runs and run detail from the
// admin API and shapes them for the console.
package loader

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/eval-atlas/pkg/adapters"
	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/models/store"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb/snapshot"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const fanOutLimit = 8

var ErrNoCache = errors.New("score cache is not configured")

type Loader struct {
	client    client.AdminClient
	snapshots snapshot.Store
	now       func() time.Time
}

// NewLoader builds a loader. snapshots may be nil, in which case scores are
// always fetched from the API.
func NewLoader(c client.AdminClient, snapshots snapshot.Store) *Loader {
	return &Loader{
		client:    c,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// LoadEnrichedBusinesses lists businesses with their assessments and runs.
// A business whose assessments or runs cannot be loaded is kept with no
// assessments.
func (l *Loader) LoadEnrichedBusinesses(ctx context.Context) ([]domain.Business, error) {
	apiBusinesses, err := l.client.GetBusinessesWithEvaluations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load businesses: %w", err)
	}

	businesses := make([]domain.Business, len(apiBusinesses))
	var g errgroup.Group
	g.SetLimit(fanOutLimit)

	for i, b := range apiBusinesses {
		businesses[i] = adapters.MapApiBusinessToDomain(b)
		g.Go(func() error {
			assessments, err := l.LoadAssessments(ctx, b.ID)
			if err != nil {
				zerolog.Ctx(ctx).Warn().
					Err(err).
					Str("business_id", b.ID).
					Msg("failed to enrich business, showing it without assessments")
				assessments = []domain.Assessment{}
			}
			businesses[i].Assessments = assessments
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(businesses, func(a, b domain.Business) int {
		return b.ActivityAt().Compare(a.ActivityAt())
	})
	return businesses, nil
}

// LoadAssessments returns the pending and completed assessments of a business,
// each with its runs, most recently active first.
func (l *Loader) LoadAssessments(ctx context.Context, businessID string) ([]domain.Assessment, error) {
	reviews, err := l.client.GetBusinessReviews(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("load assessments of business %s: %w", businessID, err)
	}

	assessments := adapters.MapApiReviewsToDomain(businessID, reviews)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i := range assessments {
		g.Go(func() error {
			runs, err := l.LoadRuns(gctx, assessments[i].ID)
			if err != nil {
				return err
			}
			assessments[i].Runs = runs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(assessments, func(a, b domain.Assessment) int {
		return b.ActivityAt().Compare(a.ActivityAt())
	})
	return assessments, nil
}

// LoadRuns returns the runs of an assessment, newest first.
func (l *Loader) LoadRuns(ctx context.Context, assessmentID string) ([]domain.RunSummary, error) {
	apiRuns, err := l.client.GetAssessmentEvaluationRuns(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("load runs of assessment %s: %w", assessmentID, err)
	}

	runs := adapters.MapApiRunSummariesToDomain(assessmentID, apiRuns)
	slices.SortStableFunc(runs, func(a, b domain.RunSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return runs, nil
}

// LoadRunDetail fetches a run and its scores concurrently. Scores of finished
// runs come from the snapshot cache when present and are written to it
// otherwise.
func (l *Loader) LoadRunDetail(ctx context.Context, runID string) (*domain.RunBundle, error) {
	cached := l.cachedScores(ctx, runID)

	var (
		detail *api.EvaluationRunDetail
		scores = cached
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = l.client.GetEvaluationRun(gctx, runID)
		return err
	})
	if scores == nil {
		g.Go(func() error {
			var err error
			scores, err = l.client.GetEvaluationScores(gctx, runID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	runDetail := adapters.MapApiRunDetailToDomain(detail)
	if cached == nil && runDetail.Status.IsTerminal() && l.snapshots != nil {
		// Scores fetched alongside the detail may predate the terminal status,
		// so only a read issued after it is seen is persisted.
		final, err := l.client.GetEvaluationScores(ctx, runID)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("run_id", runID).Msg("skipping score cache, refetch failed")
		} else {
			scores = final
			l.cacheScores(ctx, runID, runDetail.Status, scores)
		}
	}

	return &domain.RunBundle{
		Detail: runDetail,
		Scores: adapters.MapApiScoresToDomain(scores),
	}, nil
}

func (l *Loader) LoadRefinedReport(ctx context.Context, runID string) (domain.RefinedReport, error) {
	report, err := l.client.GetRefinedReport(ctx, runID)
	if err != nil {
		return domain.RefinedReport{}, fmt.Errorf("load refined report of run %s: %w", runID, err)
	}
	refined := adapters.MapApiRefinedReportToDomain(report)
	if refined.RunID == "" {
		refined.RunID = runID
	}
	return refined, nil
}

// Invalidate drops the cached scores of a run.
func (l *Loader) Invalidate(ctx context.Context, runID string) error {
	if l.snapshots == nil {
		return ErrNoCache
	}
	return l.snapshots.Delete(ctx, runID)
}

func (l *Loader) CachedRuns(ctx context.Context) ([]store.ScoreSnapshot, error) {
	if l.snapshots == nil {
		return nil, ErrNoCache
	}
	return l.snapshots.List(ctx)
}

func (l *Loader) cachedScores(ctx context.Context, runID string) *api.EvaluationScoresResponse {
	if l.snapshots == nil {
		return nil
	}
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()

	snap, err := l.snapshots.Get(ctx, runID)
	if errors.Is(err, snapshot.ErrNotFound) {
		return nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read score cache")
		return nil
	}

	scores, err := adapters.MapStoreSnapshotToApiScores(*snap)
	if err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable score snapshot")
		return nil
	}
	logger.Debug().Msg("scores served from cache")
	return scores
}

func (l *Loader) cacheScores(ctx context.Context, runID string, status domain.RunStatus, scores *api.EvaluationScoresResponse) {
	if l.snapshots == nil {
		return
	}
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()

	snap, err := adapters.MapApiScoresToStoreSnapshot(runID, status, scores, l.now().UTC())
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode score snapshot")
		return
	}
	if err := l.snapshots.Save(ctx, snap); err != nil {
		logger.Warn().Err(err).Msg("failed to cache scores")
	}
}
