package simulation

import (
	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name     string
	Courses  map[string]catalog.Course
	Students []agent.Profile

	// Semesters is the number of semesters to advance. Zero means run
	// until every student is terminal, capped at the default ceiling.
	Semesters int

	// RequiredCredits overrides the graduation threshold. Zero keeps
	// the model default.
	RequiredCredits int

	// Seed seeds the per-student random sources.
	Seed int64

	// AgentConfig, when non-nil, overrides the default progression
	// tunables. Use this for scenarios that isolate a single attrition
	// rule.
	AgentConfig *agent.Config

	// BeforeStep, when non-nil, is called before each semester advances.
	// Use this to manipulate student state between semesters (e.g.,
	// forcing a GPA to trip the probation rule).
	BeforeStep func(step int, u *model.University)
}

// SimulationResult captures all semester snapshots and the terminal
// population state.
type SimulationResult struct {
	History    []model.SemesterStats
	University *model.University
	Report     outcomes.Report
}

// Student returns the terminal student with the given ID, or nil.
func (r SimulationResult) Student(id int) *agent.Student {
	for _, s := range r.University.Students {
		if s.ID == id {
			return s
		}
	}
	return nil
}
