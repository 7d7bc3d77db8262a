package simulation

import (
	"testing"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
)

// AssertConservation asserts that graduated + dropped + enrolled equals
// the population size in every semester snapshot.
func AssertConservation(t *testing.T, result SimulationResult) {
	t.Helper()
	total := len(result.University.Students)
	for _, st := range result.History {
		if got := st.Graduated + st.Dropped + st.Enrolled; got != total {
			t.Errorf("AssertConservation: semester %d: %d graduated + %d dropped + %d enrolled = %d, want %d",
				st.Semester, st.Graduated, st.Dropped, st.Enrolled, got, total)
		}
	}
}

// AssertNoDoubleTerminal asserts that no student is both graduated and
// dropped out in the terminal state.
func AssertNoDoubleTerminal(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, s := range result.University.Students {
		if s.Graduated && s.DroppedOut {
			t.Errorf("AssertNoDoubleTerminal: student %d is both graduated and dropped out", s.ID)
		}
	}
}

// AssertGraduated asserts that a student graduated in the given semester.
func AssertGraduated(t *testing.T, result SimulationResult, id, wantSemester int) {
	t.Helper()
	s := result.Student(id)
	if s == nil {
		t.Fatalf("AssertGraduated: student %d not found", id)
	}
	if !s.Graduated {
		t.Errorf("AssertGraduated: student %d did not graduate (credits=%d, dropped=%v)", id, s.CreditsCompleted, s.DroppedOut)
		return
	}
	if s.GraduationSemester != wantSemester {
		t.Errorf("AssertGraduated: student %d graduated in semester %d, want %d", id, s.GraduationSemester, wantSemester)
	}
}

// AssertDroppedOut asserts that a student dropped out under the given rule.
func AssertDroppedOut(t *testing.T, result SimulationResult, id int, rule agent.DropRule) {
	t.Helper()
	s := result.Student(id)
	if s == nil {
		t.Fatalf("AssertDroppedOut: student %d not found", id)
	}
	if !s.DroppedOut {
		t.Errorf("AssertDroppedOut: student %d still active or graduated", id)
		return
	}
	if s.DropRule != rule {
		t.Errorf("AssertDroppedOut: student %d dropped under %q, want %q", id, s.DropRule, rule)
	}
}

// AssertStillEnrolled asserts that a student is neither graduated nor
// dropped out.
func AssertStillEnrolled(t *testing.T, result SimulationResult, id int) {
	t.Helper()
	s := result.Student(id)
	if s == nil {
		t.Fatalf("AssertStillEnrolled: student %d not found", id)
	}
	if !s.Active() {
		t.Errorf("AssertStillEnrolled: student %d is terminal (graduated=%v dropped=%v)", id, s.Graduated, s.DroppedOut)
	}
}

// AssertBlockedOn asserts that a student was blocked on the given course
// at least once.
func AssertBlockedOn(t *testing.T, result SimulationResult, id int, course string) {
	t.Helper()
	s := result.Student(id)
	if s == nil {
		t.Fatalf("AssertBlockedOn: student %d not found", id)
	}
	for _, b := range s.BlockedCourses {
		if b.Course == course {
			return
		}
	}
	t.Errorf("AssertBlockedOn: student %d was never blocked on %s (blocked: %v)", id, course, s.BlockedCourses)
}

// AssertNeverBlocked asserts that a student recorded no blocked-course
// events.
func AssertNeverBlocked(t *testing.T, result SimulationResult, id int) {
	t.Helper()
	s := result.Student(id)
	if s == nil {
		t.Fatalf("AssertNeverBlocked: student %d not found", id)
	}
	if len(s.BlockedCourses) > 0 {
		t.Errorf("AssertNeverBlocked: student %d was blocked %d times: %v", id, len(s.BlockedCourses), s.BlockedCourses)
	}
}

// AssertGPABounded asserts that every student's GPA stays within [0, 4]
// in the terminal state.
func AssertGPABounded(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, s := range result.University.Students {
		if s.GPA < 0 || s.GPA > 4 {
			t.Errorf("AssertGPABounded: student %d GPA %.2f outside [0, 4]", s.ID, s.GPA)
		}
	}
}

// AssertEnrollmentMonotone asserts that semester-over-semester enrolled
// counts never increase (students only leave the active pool).
func AssertEnrollmentMonotone(t *testing.T, result SimulationResult) {
	t.Helper()
	for i := 1; i < len(result.History); i++ {
		if result.History[i].Enrolled > result.History[i-1].Enrolled {
			t.Errorf("AssertEnrollmentMonotone: enrolled grew from %d to %d at semester %d",
				result.History[i-1].Enrolled, result.History[i].Enrolled, result.History[i].Semester)
		}
	}
}

// CountGraduated counts terminal graduates.
func CountGraduated(result SimulationResult) int {
	count := 0
	for _, s := range result.University.Students {
		if s.Graduated {
			count++
		}
	}
	return count
}

// CountDropped counts terminal dropouts.
func CountDropped(result SimulationResult) int {
	count := 0
	for _, s := range result.University.Students {
		if s.DroppedOut {
			count++
		}
	}
	return count
}
