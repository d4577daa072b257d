package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/eval-atlas/pkg/models/api"
	"github.com/de-tools/eval-atlas/pkg/runtime/app"
	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/eval-atlas/pkg/services/config"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/store/client/clienttest"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockClient() *clienttest.MockAdminClient {
	m := new(clienttest.MockAdminClient)
	m.On("GetBusinessesWithEvaluations", mock.Anything).
		Return([]api.Business{{ID: "b-1", Name: "Acme", TotalReviews: 2, CompletedReviews: 1}}, nil)
	m.On("GetBusinessReviews", mock.Anything, "b-1").
		Return(&api.BusinessReviews{Completed: []api.Assessment{{ID: "a-1", Name: "Audit"}}}, nil)
	m.On("GetAssessmentEvaluationRuns", mock.Anything, "a-1").
		Return([]api.EvaluationRunSummary{
			clienttest.RunSummary("r-1", 1, "completed", clienttest.Day(1)),
			clienttest.RunSummary("r-2", 2, "processing", clienttest.Day(3)),
		}, nil)
	m.On("GetEvaluationRun", mock.Anything, "r-1").Return(clienttest.RunDetail("r-1", "a-1", "completed"), nil)
	m.On("GetEvaluationScores", mock.Anything, mock.Anything).Return(clienttest.Scores(), nil)
	return m
}

func testEnvironment(m *clienttest.MockAdminClient, snapshots snapshot.Store) *commands.Environment {
	return &commands.Environment{
		Client: m,
		Loader: loader.NewLoader(m, snapshots),
		Settings: config.Settings{
			PollInterval: 10 * time.Millisecond,
			ProgressStep: time.Millisecond,
			SettleDelay:  time.Millisecond,
		},
	}
}

func execute(t *testing.T, env *commands.Environment, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cli := NewCLI(Options{
		Connect: func(context.Context, app.Options) (*commands.Environment, func(), error) {
			return env, func() {}, nil
		},
		Output: &out,
		Logs:   &logs,
	})
	err := cli.Execute(context.Background(), append([]string{"--format", "plain"}, args...)...)
	return out.String(), err
}

func TestCLI_Commands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		setup    func(m *clienttest.MockAdminClient)
		contains []string
		wantErr  string
	}{
		{
			name: "Businesses",
			args: []string{"businesses"},
			contains: []string{
				"=== Acme (b-1) ===",
				"Reviews: 1/2 completed",
				"- Audit: #2 processing",
			},
		},
		{
			name:     "Runs",
			args:     []string{"runs", "a-1"},
			contains: []string{"Assessment a-1, 2 runs", "- #2 r-2: processing", "- #1 r-1: completed"},
		},
		{
			name: "RunSummary",
			args: []string{"run", "r-1"},
			contains: []string{
				"Run #1 r-1",
				"Quadrant: At-Risk",
				"- Operational strength: 28.0",
				"- M1: 70.0",
			},
		},
		{
			name:     "RunBreakdown",
			args:     []string{"run", "r-1", "--breakdown"},
			contains: []string{"=== Question breakdown ===", "- Q1: 60.0 avg", "min 50.0, max 70.0 over 2 interviews"},
		},
		{
			name:     "RunInterview",
			args:     []string{"run", "r-1", "--interview", "s-1"},
			contains: []string{"=== Interview Alice metrics ===", "- M1: 80.0", "- Q1: 70.0"},
		},
		{
			name: "RunInsights",
			args: []string{"run", "r-1", "--insights"},
			setup: func(m *clienttest.MockAdminClient) {
				m.On("GetRefinedReport", mock.Anything, "r-1").Return(&api.RefinedReport{
					ExecutiveSummary: "Strong execution",
					KeyActions:       []json.RawMessage{json.RawMessage(`"Hire a CTO"`)},
				}, nil)
			},
			contains: []string{"Summary: Strong execution", "=== Key actions ===", "- Hire a CTO"},
		},
		{
			name:    "RunUnknownInterview",
			args:    []string{"run", "r-1", "--interview", "s-404"},
			wantErr: `run r-1 has no interview "s-404"`,
		},
		{
			name:    "RunExclusiveFlags",
			args:    []string{"run", "r-1", "--interview", "s-1", "--breakdown"},
			wantErr: "none of the others can be",
		},
		{
			name: "Evaluate",
			args: []string{"evaluate", "a-1"},
			setup: func(m *clienttest.MockAdminClient) {
				m.On("RunEvaluation", mock.Anything, "a-1").
					Return(&api.RunEvaluationResponse{RunID: "r-3", RunNumber: 3, Status: "pending"}, nil)
			},
			contains: []string{"[1/5]", "[5/5]", "Started run #3 r-3 (pending)"},
		},
		{
			name: "EvaluateFailure",
			args: []string{"evaluate", "a-1"},
			setup: func(m *clienttest.MockAdminClient) {
				m.On("RunEvaluation", mock.Anything, "a-1").Return(nil, errors.New("quota exceeded"))
			},
			wantErr: "quota exceeded",
		},
		{
			name: "Resolve",
			args: []string{"resolve", "f-1", "--resolution", "Addressed"},
			setup: func(m *clienttest.MockAdminClient) {
				m.On("ResolveFlag", mock.Anything, "f-1", "Addressed").
					Return(&api.MessageResponse{Message: "ok"}, nil)
			},
			contains: []string{"Flag f-1 resolved"},
		},
		{
			name:    "ResolveRequiresResolution",
			args:    []string{"resolve", "f-1"},
			wantErr: `required flag(s) "resolution" not set`,
		},
		{
			name:    "CacheWithoutStore",
			args:    []string{"cache", "list"},
			wantErr: loader.ErrNoCache.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newMockClient()
			if tc.setup != nil {
				tc.setup(m)
			}

			out, err := execute(t, testEnvironment(m, nil), tc.args...)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLI_Watch(t *testing.T) {
	m := new(clienttest.MockAdminClient)
	m.On("GetEvaluationRun", mock.Anything, "r-2").Return(clienttest.RunDetail("r-2", "a-1", "processing"), nil).Twice()
	m.On("GetEvaluationRun", mock.Anything, "r-2").Return(clienttest.RunDetail("r-2", "a-1", "completed"), nil)
	m.On("GetEvaluationScores", mock.Anything, "r-2").Return(clienttest.Scores(), nil)

	out, err := execute(t, testEnvironment(m, nil), "watch", "r-2")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "run r-2 #1: processing"))
	assert.Equal(t, 1, strings.Count(out, "run r-2 #1: completed"))
	assert.Contains(t, out, "Status: completed")
	m.AssertNumberOfCalls(t, "GetEvaluationRun", 3)
}

func TestCLI_Cache(t *testing.T) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	snapshots, err := snapshot.NewStore(db)
	require.NoError(t, err)

	env := testEnvironment(newMockClient(), snapshots)

	out, err := execute(t, env, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Score cache is empty")

	_, err = execute(t, env, "run", "r-1")
	require.NoError(t, err)

	out, err = execute(t, env, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "- r-1: completed")
	assert.Contains(t, out, "3 metrics, 2 questions")

	out, err = execute(t, env, "cache", "clear", "r-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared cached scores for run r-1")

	out, err = execute(t, env, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Score cache is empty")
}

func TestCLI_GlobalFlags(t *testing.T) {
	var got app.Options
	cli := NewCLI(Options{
		Connect: func(_ context.Context, opts app.Options) (*commands.Environment, func(), error) {
			got = opts
			return nil, nil, errors.New("no such profile")
		},
		Output: &bytes.Buffer{},
		Logs:   &bytes.Buffer{},
	})

	err := cli.Execute(context.Background(),
		"--profile", "staging", "--profiles-file", "/tmp/profiles", "--settings", "/tmp/s.yaml", "businesses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such profile")
	assert.Equal(t, app.Options{Profile: "staging", ProfilesFile: "/tmp/profiles", SettingsFile: "/tmp/s.yaml"}, got)

	_, err = execute(t, testEnvironment(newMockClient(), nil), "--format", "xml", "businesses")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}
