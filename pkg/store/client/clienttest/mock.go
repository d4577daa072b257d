// Package clienttest provides a testify mock of client.AdminClient.
package clienttest

import (
	"context"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/stretchr/testify/mock"
)

var _ client.AdminClient = (*MockAdminClient)(nil)

type MockAdminClient struct {
	mock.Mock
}

func (m *MockAdminClient) GetBusinessesWithEvaluations(ctx context.Context) ([]api.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Business), args.Error(1)
}

func (m *MockAdminClient) GetBusinessReviews(ctx context.Context, businessID string) (*api.BusinessReviews, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.BusinessReviews), args.Error(1)
}

func (m *MockAdminClient) GetAssessmentEvaluationRuns(
	ctx context.Context,
	assessmentID string,
) ([]api.EvaluationRunSummary, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.EvaluationRunSummary), args.Error(1)
}

func (m *MockAdminClient) GetEvaluationRun(ctx context.Context, runID string) (*api.EvaluationRunDetail, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.EvaluationRunDetail), args.Error(1)
}

func (m *MockAdminClient) GetEvaluationScores(ctx context.Context, runID string) (*api.EvaluationScoresResponse, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.EvaluationScoresResponse), args.Error(1)
}

func (m *MockAdminClient) RunEvaluation(ctx context.Context, assessmentID string) (*api.RunEvaluationResponse, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RunEvaluationResponse), args.Error(1)
}

func (m *MockAdminClient) ResolveFlag(ctx context.Context, flagID, resolution string) (*api.MessageResponse, error) {
	args := m.Called(ctx, flagID, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MessageResponse), args.Error(1)
}

func (m *MockAdminClient) GetRefinedReport(ctx context.Context, runID string) (*api.RefinedReport, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.RefinedReport), args.Error(1)
}
