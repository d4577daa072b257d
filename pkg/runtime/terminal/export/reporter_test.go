package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	report := &domain.Report{
		Title:    "Run #1 r-1",
		Subtitle: "Assessment a-1",
		Sections: []domain.ReportSection{
			{Title: "Overview", Summary: map[string]interface{}{"Status": domain.RunStatusCompleted}},
			{Title: "Metrics", Details: []domain.ReportDetail{
				{Name: "M1", Value: "70.0", Description: "Execution"},
			}},
		},
	}

	tests := []struct {
		name     string
		format   Format
		contains []string
		excludes []string
	}{
		{
			name:     "Table",
			format:   FormatTable,
			contains: []string{"Run #1 r-1", "Status: completed", "| M1 ", "| Execution ", "+---"},
		},
		{
			name:     "Plain",
			format:   FormatPlain,
			contains: []string{"=== Metrics ===", "- M1: 70.0\n  Execution"},
			excludes: []string{"+---"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewReporter(&buf, tc.format).Handle(report))

			for _, want := range tc.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PLAIN")
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate(strings.Repeat("abcdefghij", 2), 10))
}

func TestRunsReport(t *testing.T) {
	report := RunsReport("a-1", []domain.RunSummary{
		{ID: "r-2", RunNumber: 2, Status: domain.RunStatusProcessing},
		{ID: "r-1", RunNumber: 1, Status: domain.RunStatusCompleted, OverallScore: 72.5, UnresolvedFlags: 2},
	})

	require.Len(t, report.Sections, 1)
	details := report.Sections[0].Details
	require.Len(t, details, 2)
	assert.Equal(t, "#2 r-2", details[0].Name)
	assert.Equal(t, "created -", details[0].Description)
	assert.Equal(t, "created -, score 72.5, 2 open flags", details[1].Description)
}
