package simulation

import (
	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

// ThreeCourseCatalog returns a minimal catalog: a free-standing gen-ed
// course, a core course with no prerequisites, and a follow-on course
// gated on the core course.
func ThreeCourseCatalog() map[string]catalog.Course {
	return map[string]catalog.Course{
		"ENC1101": {Name: "Composition", Credits: 3, Category: "General Education"},
		"COP2000": {Name: "Programming 1", Credits: 3, Category: catalog.CoreCategory},
		"COP3530": {Name: "Data Structures", Credits: 3, Prerequisites: []string{"COP2000"}},
	}
}

// StudentProfile builds a profile with the given ability and plan.
// Dropout chance is carried but unused by the progression rules.
func StudentProfile(id int, ability float64, plan map[string][]string) agent.Profile {
	return agent.Profile{
		ID:              id,
		AcademicAbility: ability,
		DropoutChance:   0.1,
		AdmissionTerm:   catalog.TermFall,
		StudyPlan:       plan,
	}
}
