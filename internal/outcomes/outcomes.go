// Package outcomes reduces a finished simulation into per-student summary
// records and cohort-level statistics. Everything here is computed once
// from terminal state; nothing feeds back into the simulation.
package outcomes

import (
	"math"
	"sort"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
)

// StudentRecord is the per-student summary row.
type StudentRecord struct {
	ID                     int                    `json:"id"`
	Credits                int                    `json:"credits_completed"`
	GPA                    float64                `json:"gpa"`
	Graduated              bool                   `json:"graduated"`
	DroppedOut             bool                   `json:"dropped_out"`
	DropRule               agent.DropRule         `json:"drop_rule,omitempty"`
	SemestersEnrolled      int                    `json:"semesters_enrolled"`
	GraduationSemester     *int                   `json:"graduation_semester"`
	AdmissionTerm          catalog.Term           `json:"admission_term,omitempty"`
	AcademicAbility        float64                `json:"academic_ability"`
	Transcript             map[string]agent.Grade `json:"transcript"`
	CompletedCourses       []string               `json:"completed_courses"`
	TimesBlocked           int                    `json:"times_blocked"`
	DistinctCoursesBlocked int                    `json:"distinct_courses_blocked"`
}

// BlockedEvent ties a blocked-course record to the student it happened to.
type BlockedEvent struct {
	StudentID int `json:"student_id"`
	agent.BlockedCourse
}

// TermOutcome summarizes one admission-term cohort.
type TermOutcome struct {
	Total          int     `json:"total"`
	Graduated      int     `json:"graduated"`
	Dropped        int     `json:"dropped_out"`
	StillEnrolled  int     `json:"still_enrolled"`
	GraduationRate float64 `json:"graduation_rate"`
	DropoutRate    float64 `json:"dropout_rate"`
}

// BlockingImpact compares graduation rates between students who were
// never blocked by prerequisites and those who were blocked at least
// once.
type BlockingImpact struct {
	NeverBlocked       int     `json:"never_blocked"`
	EverBlocked        int     `json:"ever_blocked"`
	NeverBlockedRate   float64 `json:"never_blocked_graduation_rate"`
	EverBlockedRate    float64 `json:"ever_blocked_graduation_rate"`
	TotalBlockedEvents int     `json:"total_blocked_events"`
	DistinctCoursesHit int     `json:"distinct_courses_blocked"`
}

// Report is the full post-run summary.
type Report struct {
	Students []StudentRecord `json:"students"`

	// GraduationTiming counts graduates per graduation semester.
	GraduationTiming map[int]int `json:"graduation_timing"`

	// ByAdmissionTerm groups outcomes per admission-term cohort.
	ByAdmissionTerm map[catalog.Term]TermOutcome `json:"by_admission_term"`

	// Blocking summarizes prerequisite-blocking impact.
	Blocking BlockingImpact `json:"blocking"`

	// BlockedByCourse counts blockages per blocked course.
	BlockedByCourse map[string]int `json:"blocked_by_course"`

	// BlockingPrereqs counts how often each prerequisite caused a
	// blockage.
	BlockingPrereqs map[string]int `json:"blocking_prereqs"`

	// Blocked lists every blocked-course event with its student.
	Blocked []BlockedEvent `json:"-"`
}

// Summarize reduces the model's terminal population snapshot to a Report.
func Summarize(u *model.University) Report {
	report := Report{
		Students:         make([]StudentRecord, 0, len(u.Students)),
		GraduationTiming: make(map[int]int),
		ByAdmissionTerm:  make(map[catalog.Term]TermOutcome),
		BlockedByCourse:  make(map[string]int),
		BlockingPrereqs:  make(map[string]int),
	}

	neverBlockedGrads, everBlockedGrads := 0, 0
	distinctBlocked := make(map[string]bool)

	for _, s := range u.Students {
		report.Students = append(report.Students, newStudentRecord(s))

		if s.Graduated {
			report.GraduationTiming[s.GraduationSemester]++
		}

		term := s.AdmissionTerm
		cohort := report.ByAdmissionTerm[term]
		cohort.Total++
		switch {
		case s.Graduated:
			cohort.Graduated++
		case s.DroppedOut:
			cohort.Dropped++
		default:
			cohort.StillEnrolled++
		}
		report.ByAdmissionTerm[term] = cohort

		if len(s.BlockedCourses) == 0 {
			report.Blocking.NeverBlocked++
			if s.Graduated {
				neverBlockedGrads++
			}
		} else {
			report.Blocking.EverBlocked++
			if s.Graduated {
				everBlockedGrads++
			}
		}

		for _, b := range s.BlockedCourses {
			report.Blocked = append(report.Blocked, BlockedEvent{StudentID: s.ID, BlockedCourse: b})
			report.BlockedByCourse[b.Course]++
			distinctBlocked[b.Course] = true
			for _, prereq := range b.MissingPrereqs {
				report.BlockingPrereqs[prereq]++
			}
			report.Blocking.TotalBlockedEvents++
		}
	}

	report.Blocking.DistinctCoursesHit = len(distinctBlocked)
	report.Blocking.NeverBlockedRate = rate(neverBlockedGrads, report.Blocking.NeverBlocked)
	report.Blocking.EverBlockedRate = rate(everBlockedGrads, report.Blocking.EverBlocked)

	for term, cohort := range report.ByAdmissionTerm {
		cohort.GraduationRate = rate(cohort.Graduated, cohort.Total)
		cohort.DropoutRate = rate(cohort.Dropped, cohort.Total)
		report.ByAdmissionTerm[term] = cohort
	}

	return report
}

// newStudentRecord snapshots one terminal agent into a summary row.
func newStudentRecord(s *agent.Student) StudentRecord {
	completed := make([]string, 0, len(s.CompletedCourses))
	for code := range s.CompletedCourses {
		completed = append(completed, code)
	}
	sort.Strings(completed)

	transcript := make(map[string]agent.Grade, len(s.Transcript))
	for code, grade := range s.Transcript {
		transcript[code] = grade
	}

	var gradSemester *int
	if s.Graduated {
		sem := s.GraduationSemester
		gradSemester = &sem
	}

	return StudentRecord{
		ID:                     s.ID,
		Credits:                s.CreditsCompleted,
		GPA:                    s.GPA,
		Graduated:              s.Graduated,
		DroppedOut:             s.DroppedOut,
		DropRule:               s.DropRule,
		SemestersEnrolled:      s.SemestersEnrolled(),
		GraduationSemester:     gradSemester,
		AdmissionTerm:          s.AdmissionTerm,
		AcademicAbility:        s.AcademicAbility,
		Transcript:             transcript,
		CompletedCourses:       completed,
		TimesBlocked:           s.TimesBlocked(),
		DistinctCoursesBlocked: s.DistinctBlockedCourses(),
	}
}

// TopBlocked returns the n most frequently blocked courses, most blocked
// first, ties broken by course code.
func (r Report) TopBlocked(n int) []string {
	codes := make([]string, 0, len(r.BlockedByCourse))
	for code := range r.BlockedByCourse {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if r.BlockedByCourse[codes[i]] != r.BlockedByCourse[codes[j]] {
			return r.BlockedByCourse[codes[i]] > r.BlockedByCourse[codes[j]]
		}
		return codes[i] < codes[j]
	})
	if n < len(codes) {
		codes = codes[:n]
	}
	return codes
}

// rate returns num/den rounded to 4 decimals, or 0 for an empty cohort.
func rate(num, den int) float64 {
	if den == 0 {
		return 0.0
	}
	return math.Round(float64(num)/float64(den)*10000) / 10000
}
