package console

import "github.com/de-tools/eval-atlas/pkg/models/domain"

// Lookups run with c.mu held. They return copies so that a later refresh of
// the loaded lists cannot change the selected entities.

func (c *Console) findBusiness(id string) (*domain.Business, bool) {
	for _, b := range c.businesses {
		if b.ID == id {
			return &b, true
		}
	}
	return nil, false
}

// findAssessment only matches assessments of the selected business.
func (c *Console) findAssessment(id string) (*domain.Assessment, bool) {
	businessID := c.state.BusinessID()
	if businessID == "" {
		return nil, false
	}
	for _, a := range c.assessments {
		if a.ID == id && a.BusinessID == businessID {
			return &a, true
		}
	}
	for _, a := range c.state.Business.Assessments {
		if a.ID == id && a.BusinessID == businessID {
			return &a, true
		}
	}
	return nil, false
}

// hasRun reports whether id is in the run list of the selected assessment.
func (c *Console) hasRun(id string) bool {
	assessmentID := c.state.AssessmentID()
	for _, r := range c.runs {
		if r.ID == id && r.AssessmentID == assessmentID {
			return true
		}
	}
	return false
}

// locateRun finds the business and assessment owning runID in the enriched
// business list, falling back to the given selection.
func (c *Console) locateRun(runID string, b *domain.Business, a *domain.Assessment) (*domain.Business, *domain.Assessment) {
	for _, business := range c.businesses {
		for _, assessment := range business.Assessments {
			for _, run := range assessment.Runs {
				if run.ID == runID {
					return &business, &assessment
				}
			}
		}
	}
	return b, a
}

// locateAssessment finds the business owning assessmentID, falling back to
// the given selection when it matches.
func (c *Console) locateAssessment(
	assessmentID string,
	b *domain.Business,
	a *domain.Assessment,
) (*domain.Business, *domain.Assessment) {
	for _, business := range c.businesses {
		for _, assessment := range business.Assessments {
			if assessment.ID == assessmentID {
				return &business, &assessment
			}
		}
	}
	if a != nil && a.ID == assessmentID {
		return b, a
	}
	return nil, nil
}
