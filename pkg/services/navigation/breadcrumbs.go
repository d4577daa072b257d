package navigation

// Crumb is one entry of the breadcrumb trail. The last crumb is the current
// view; the others are valid JumpTo targets.
type Crumb struct {
	Level    Level
	SubLevel SubLevel
	Label    string
	Current  bool
}

func Breadcrumbs(s State) []Crumb {
	crumbs := []Crumb{{Level: LevelBusinesses, Label: "Businesses"}}
	rank := levelRank[s.Level]

	if rank >= levelRank[LevelAssessments] && s.Business != nil {
		crumbs = append(crumbs, Crumb{Level: LevelAssessments, Label: s.Business.Name})
	}
	if rank >= levelRank[LevelRuns] && s.Assessment != nil {
		crumbs = append(crumbs, Crumb{Level: LevelRuns, Label: s.Assessment.Name})
	}
	if s.Level == LevelDetail {
		crumbs = append(crumbs, Crumb{Level: LevelDetail, SubLevel: SubLevelSummary, Label: "Run " + s.RunID})
		switch s.SubLevel {
		case SubLevelBreakdown:
			crumbs = append(crumbs, Crumb{Level: LevelDetail, SubLevel: SubLevelBreakdown, Label: "Question breakdown"})
		case SubLevelInterview:
			crumbs = append(crumbs, Crumb{Level: LevelDetail, SubLevel: SubLevelInterview, Label: "Interview " + s.SourceID})
		}
	}

	crumbs[len(crumbs)-1].Current = true
	return crumbs
}
