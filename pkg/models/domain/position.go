package domain

type Quadrant string

const (
	QuadrantAdaptiveLeader        Quadrant = "Adaptive Leader"
	QuadrantSolidPerformer        Quadrant = "Solid Performer"
	QuadrantScatteredExperimenter Quadrant = "Scattered Experimenter"
	QuadrantAtRisk                Quadrant = "At-Risk"
)

// Weights maps a metric code to its fraction of a composite.
type Weights map[string]float64

// Position is the two-axis strategic classification of a set of metrics.
type Position struct {
	OperationalStrength float64
	FutureReadiness     float64
	Overall             float64
	Gap                 float64
	Quadrant            Quadrant
	// HasData is false when no metric contributed; Quadrant then falls into
	// At-Risk by arithmetic and views may hide it.
	HasData bool
}
