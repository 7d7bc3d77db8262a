// Package simulation provides a multi-semester test harness for
// validating emergent dynamics of the progression model.
//
// The simulation exercises the real catalog, agent state machine, and
// university scheduler with no mocks. Scenarios are Go builders that
// construct a catalog and a student population and run configurable
// numbers of semesters, capturing per-semester snapshots for
// property-based assertions.
//
// Usage:
//
//	func TestCohortConservation(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:     "conservation",
//	        Courses:  map[string]catalog.Course{...},
//	        Students: []agent.Profile{...},
//	        Semesters: 12,
//	    })
//	    simulation.AssertConservation(t, result)
//	}
package simulation
