package simulation

import (
	"testing"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
)

// Runner orchestrates multi-semester simulation experiments against the
// real catalog, agent, and scheduler.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	cat := catalog.New(scenario.Courses)

	opts := model.Options{
		RequiredCredits: scenario.RequiredCredits,
		Seed:            scenario.Seed,
	}
	if scenario.AgentConfig != nil {
		opts.Agent = *scenario.AgentConfig
	}

	u, err := model.New(scenario.Students, cat, opts)
	if err != nil {
		r.t.Fatalf("%s: building model: %v", scenario.Name, err)
	}

	semesters := scenario.Semesters
	if semesters <= 0 {
		semesters = model.DefaultMaxSemesters
	}

	var history []model.SemesterStats
	for step := 0; step < semesters && u.Running; step++ {
		if scenario.BeforeStep != nil {
			scenario.BeforeStep(step, u)
		}
		history = append(history, u.Step())
	}

	return SimulationResult{
		History:    history,
		University: u,
		Report:     outcomes.Summarize(u),
	}
}
