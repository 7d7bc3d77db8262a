package simulation

import (
	"testing"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
)

// lowAbilityCohort builds n students below the early-attrition ability
// threshold with empty plans.
func lowAbilityCohort(n int, ability float64) []agent.Profile {
	students := make([]agent.Profile, n)
	for i := range students {
		students[i] = agent.Profile{
			ID:              i + 1,
			AcademicAbility: ability,
			DropoutChance:   0.1,
			AdmissionTerm:   catalog.TermFall,
		}
	}
	return students
}

// Within the first four semesters the only live attrition rule for a
// low-ability cohort is early attrition, and at 15% per semester a
// 300-student cohort cannot dodge it entirely.
func TestEarlyAttritionThinsLowAbilityCohort(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:      "early-attrition",
		Courses:   ThreeCourseCatalog(),
		Students:  lowAbilityCohort(300, 0.5),
		Semesters: 4,
		Seed:      11,
	})

	dropped := CountDropped(result)
	if dropped == 0 {
		t.Fatal("no early-attrition dropouts in 300-student cohort")
	}
	for _, s := range result.University.Students {
		if s.DroppedOut && s.DropRule != agent.RuleEarlyAttrition {
			t.Errorf("student %d dropped under %q in first four semesters", s.ID, s.DropRule)
		}
	}
	AssertConservation(t, result)
}

// Pinning GPA and credits via BeforeStep leaves late attrition as the
// only live rule from semester six onward.
func TestLateAttritionOnly(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:     "late-attrition",
		Courses:  ThreeCourseCatalog(),
		Students: lowAbilityCohort(200, 0.9),
		BeforeStep: func(step int, u *model.University) {
			for _, s := range u.Students {
				s.CreditsCompleted = 15
				s.GPA = 3.0
			}
		},
		Semesters: 12,
		Seed:      13,
	})

	dropped := CountDropped(result)
	if dropped == 0 {
		t.Fatal("no late-attrition dropouts in 200-student cohort over 12 semesters")
	}
	for _, s := range result.University.Students {
		if s.DroppedOut && s.DropRule != agent.RuleLateAttrition {
			t.Errorf("student %d dropped under %q, want late attrition only", s.ID, s.DropRule)
		}
	}
}

// A student in good academic standing with too few credits is ended by
// the stagnation checkpoint entering semester five. Pinning the GPA
// keeps probation quiet so the checkpoint is the only live rule.
func TestStagnationCheckpoint(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:    "stagnation-checkpoint",
		Courses: ThreeCourseCatalog(),
		Students: []agent.Profile{
			StudentProfile(1, 0.9, nil),
		},
		BeforeStep: func(step int, u *model.University) {
			u.Students[0].GPA = 3.0
		},
		Semesters: 8,
		Seed:      19,
	})

	AssertDroppedOut(t, result, 1, agent.RuleStagnation)
	s := result.Student(1)
	if got := s.SemestersEnrolled(); got != 4 {
		t.Errorf("semesters enrolled = %d, want 4", got)
	}
}

// A second consecutive low-GPA semester past the probation grace period
// forces a dropout, and the dropout semester itself does not count as
// enrolled.
func TestProbationStreakForcesDropout(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:    "probation-streak",
		Courses: ThreeCourseCatalog(),
		Students: []agent.Profile{
			StudentProfile(1, 0.9, nil),
		},
		BeforeStep: func(step int, u *model.University) {
			if step != 0 {
				return
			}
			s := u.Students[0]
			s.SemesterNum = 4
			s.GPA = 1.5
			s.LowGPAStreak = 1
			s.CreditsCompleted = 20
		},
		Semesters: 1,
		Seed:      17,
	})

	AssertDroppedOut(t, result, 1, agent.RuleProbation)
	s := result.Student(1)
	if s.SemesterNum != 4 {
		t.Errorf("semester counter advanced to %d on the dropout step", s.SemesterNum)
	}
}
