package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreadcrumbs(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []Crumb
	}{
		{
			name:  "businesses",
			state: Initial(),
			want:  []Crumb{{Level: LevelBusinesses, Label: "Businesses", Current: true}},
		},
		{
			name:  "runs",
			state: atRuns(),
			want: []Crumb{
				{Level: LevelBusinesses, Label: "Businesses"},
				{Level: LevelAssessments, Label: "Acme"},
				{Level: LevelRuns, Label: "Q1 audit", Current: true},
			},
		},
		{
			name:  "interview",
			state: atDetail(SubLevelInterview),
			want: []Crumb{
				{Level: LevelBusinesses, Label: "Businesses"},
				{Level: LevelAssessments, Label: "Acme"},
				{Level: LevelRuns, Label: "Q1 audit"},
				{Level: LevelDetail, SubLevel: SubLevelSummary, Label: "Run r-1"},
				{Level: LevelDetail, SubLevel: SubLevelInterview, Label: "Interview s-1", Current: true},
			},
		},
		{
			name:  "business kept after back is not a crumb",
			state: State{Level: LevelBusinesses, Business: acme},
			want:  []Crumb{{Level: LevelBusinesses, Label: "Businesses", Current: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breadcrumbs(tt.state))
		})
	}
}

func TestBreadcrumbs_AncestorsAreJumpTargets(t *testing.T) {
	s := atDetail(SubLevelBreakdown)
	for _, crumb := range Breadcrumbs(s) {
		if crumb.Current {
			continue
		}
		_, _, err := JumpTo(s, crumb.Level)
		assert.NoError(t, err, "jump to %s", crumb.Level)
	}
}
