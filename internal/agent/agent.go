// Package agent implements the per-student semester state machine: course
// eligibility, stochastic grade assignment, GPA tracking, and the
// graduation/dropout decision rules.
//
// A Student is a plain struct advanced by Model.Step; there is no
// framework base type. All randomness flows through the agent's own
// rand.Rand so results are reproducible per seed and agents could be
// advanced in parallel without draws interleaving.
package agent

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

// State is the lifecycle state of a student agent. Graduated and
// DroppedOut are terminal and mutually exclusive.
type State string

const (
	StateActive     State = "active"
	StateGraduated  State = "graduated"
	StateDroppedOut State = "dropped_out"
)

// DropRule identifies which attrition rule ended a student's run.
type DropRule string

const (
	RuleEarlyAttrition DropRule = "early_attrition"
	RuleProbation      DropRule = "academic_probation"
	RuleStagnation     DropRule = "stagnation"
	RuleLateAttrition  DropRule = "late_attrition"
)

// BlockedCourse is a diagnostic record of a planned course whose
// prerequisites were unmet. The state machine never reads these back.
type BlockedCourse struct {
	Semester       int          `json:"semester"`
	Term           catalog.Term `json:"term"`
	Course         string       `json:"course"`
	MissingPrereqs []string     `json:"missing_prereqs"`
}

// StepResult summarizes one AdvanceSemester call for the scheduler.
type StepResult struct {
	// Advanced is false when the agent was already terminal (no-op step).
	Advanced bool

	// DropRule is set when this step ended in a dropout.
	DropRule DropRule

	// Graduated is true when this step ended in graduation.
	Graduated bool

	// Attempted lists the courses graded this semester, in draw order.
	Attempted []string

	// Blocked lists the blocked-course events recorded this semester.
	Blocked []BlockedCourse
}

// Student owns one simulated student's mutable state. Construct with New
// and advance with AdvanceSemester; never mutate fields directly
// mid-run.
type Student struct {
	ID              int
	AcademicAbility float64
	DropoutChance   float64
	AdmissionTerm   catalog.Term

	SemesterNum        int
	CompletedCourses   map[string]bool
	RepeatCourses      map[string]bool
	Transcript         map[string]Grade
	CreditsCompleted   int
	GPA                float64
	LowGPAStreak       int
	Graduated          bool
	DroppedOut         bool
	DropRule           DropRule // set when DroppedOut
	GraduationSemester int      // 0 until graduation
	BlockedCourses     []BlockedCourse

	plan            map[int][]string
	planTerm        map[string]catalog.Term
	catalog         *catalog.Catalog
	coreCourses     []string
	requiredCredits int
	cfg             Config
	rng             *rand.Rand
}

// New constructs a student agent from an external profile. A malformed
// profile is a fatal configuration error. The catalog reference is
// shared and read-only; rng is owned exclusively by this agent.
func New(profile Profile, cat *catalog.Catalog, cfg Config, requiredCredits int, rng *rand.Rand) (*Student, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("student %d: nil catalog", profile.ID)
	}
	if rng == nil {
		return nil, fmt.Errorf("student %d: nil rng", profile.ID)
	}

	plan := profile.plan()

	// Derive each planned course's typical term once: the term of the
	// first plan semester it appears in. Failed courses are only retaken
	// in semesters whose term matches.
	planTerm := make(map[string]catalog.Term)
	for _, sem := range planSemesters(plan) {
		for _, code := range plan[sem] {
			if _, seen := planTerm[code]; !seen {
				planTerm[code] = catalog.TermForSemester(sem)
			}
		}
	}

	return &Student{
		ID:               profile.ID,
		AcademicAbility:  profile.AcademicAbility,
		DropoutChance:    profile.DropoutChance,
		AdmissionTerm:    profile.AdmissionTerm,
		SemesterNum:      1,
		CompletedCourses: make(map[string]bool),
		RepeatCourses:    make(map[string]bool),
		Transcript:       make(map[string]Grade),
		plan:             plan,
		planTerm:         planTerm,
		catalog:          cat,
		coreCourses:      cat.CoreCourses(),
		requiredCredits:  requiredCredits,
		cfg:              cfg,
		rng:              rng,
	}, nil
}

// State returns the agent's lifecycle state.
func (s *Student) State() State {
	switch {
	case s.Graduated:
		return StateGraduated
	case s.DroppedOut:
		return StateDroppedOut
	default:
		return StateActive
	}
}

// Active reports whether the agent is still enrolled.
func (s *Student) Active() bool {
	return !s.Graduated && !s.DroppedOut
}

// SemestersEnrolled returns the number of semesters the agent has been
// stepped through.
func (s *Student) SemestersEnrolled() int {
	return s.SemesterNum - 1
}

// AdvanceSemester advances the agent by one semester under the given
// academic term. Terminal agents are inert: the call is a no-op and
// every field is left unchanged.
//
// Order within a step is fixed: dropout evaluation first (a dropout
// short-circuits the semester entirely, including the semester counter),
// then enrollment, grading, GPA recompute, the graduation check, and
// finally the counter increment.
func (s *Student) AdvanceSemester(term catalog.Term) StepResult {
	if !s.Active() {
		return StepResult{}
	}
	res := StepResult{Advanced: true}

	if rule := s.evaluateDropout(); rule != "" {
		s.DroppedOut = true
		s.DropRule = rule
		res.DropRule = rule
		return res
	}

	for _, code := range s.candidateCourses(term) {
		course := s.catalog.Get(code)

		missing := s.missingPrereqs(course)
		if len(missing) > 0 {
			event := BlockedCourse{
				Semester:       s.SemesterNum,
				Term:           term,
				Course:         code,
				MissingPrereqs: missing,
			}
			s.BlockedCourses = append(s.BlockedCourses, event)
			res.Blocked = append(res.Blocked, event)
			continue
		}

		grade := s.cfg.Grades.Draw(s.AcademicAbility, s.rng)
		s.Transcript[code] = grade
		if grade.IsPassing() {
			s.CompletedCourses[code] = true
			s.CreditsCompleted += course.Credits
			delete(s.RepeatCourses, code)
		} else {
			s.RepeatCourses[code] = true
		}
		res.Attempted = append(res.Attempted, code)
	}

	s.GPA = s.computeGPA()

	if s.CreditsCompleted >= s.requiredCredits && s.coreCompleted() {
		s.Graduated = true
		s.DroppedOut = false
		if s.GraduationSemester == 0 {
			s.GraduationSemester = s.SemesterNum
		}
		res.Graduated = true
	}

	s.SemesterNum++
	return res
}

// evaluateDropout applies the attrition rules in fixed precedence order
// and returns the first rule that fires. The probation streak is updated
// as a side effect even when a later rule ends the run.
func (s *Student) evaluateDropout() DropRule {
	cfg := s.cfg

	if s.SemesterNum >= cfg.EarlyAttritionFrom && s.SemesterNum <= cfg.EarlyAttritionThrough &&
		s.AcademicAbility < cfg.EarlyAttritionAbility {
		if s.rng.Float64() < cfg.EarlyAttritionChance {
			return RuleEarlyAttrition
		}
	}

	if s.SemesterNum > cfg.ProbationAfterSemester && s.GPA < cfg.ProbationGPA {
		s.LowGPAStreak++
		if s.LowGPAStreak >= cfg.ProbationStreak {
			return RuleProbation
		}
	} else {
		s.LowGPAStreak = 0
	}

	if s.SemesterNum == cfg.StagnationSemester && s.CreditsCompleted < cfg.StagnationCredits {
		return RuleStagnation
	}

	if s.SemesterNum >= cfg.LateAttritionFrom {
		if s.rng.Float64() < cfg.LateAttritionChance {
			return RuleLateAttrition
		}
	}

	return ""
}

// candidateCourses builds this semester's enrollment candidates: the
// study plan entry for the current semester plus any term-matched repeat
// courses, minus everything already completed. The result is a sorted
// snapshot; the repeat set is never mutated while being iterated.
func (s *Student) candidateCourses(term catalog.Term) []string {
	set := make(map[string]bool)

	for _, code := range s.plan[s.SemesterNum] {
		if !s.CompletedCourses[code] {
			set[code] = true
		}
	}

	for code := range s.RepeatCourses {
		if set[code] || s.CompletedCourses[code] {
			continue
		}
		// Term-matched retry: only retake a failed course in semesters
		// whose term matches its typical plan term. Courses with no plan
		// history are retried unconditionally.
		if typical, ok := s.planTerm[code]; ok && typical != term {
			continue
		}
		set[code] = true
	}

	candidates := make([]string, 0, len(set))
	for code := range set {
		candidates = append(candidates, code)
	}
	sort.Strings(candidates)
	return candidates
}

// missingPrereqs returns the sorted prerequisite codes of course that the
// student has not completed, or nil when the course is enrollable.
func (s *Student) missingPrereqs(course catalog.Course) []string {
	var missing []string
	for _, prereq := range course.Prerequisites {
		if !s.CompletedCourses[prereq] {
			missing = append(missing, prereq)
		}
	}
	sort.Strings(missing)
	return missing
}

// computeGPA returns the unweighted mean grade-point value over every
// transcript entry (latest grade per course, failed attempts included),
// rounded to 2 decimals. An empty transcript is 0.0.
func (s *Student) computeGPA() float64 {
	if len(s.Transcript) == 0 {
		return 0.0
	}
	total := 0.0
	for _, grade := range s.Transcript {
		total += grade.Points()
	}
	return math.Round(total/float64(len(s.Transcript))*100) / 100
}

// coreCompleted reports whether every core course is in the completed set.
func (s *Student) coreCompleted() bool {
	for _, code := range s.coreCourses {
		if !s.CompletedCourses[code] {
			return false
		}
	}
	return true
}

// TimesBlocked returns the total number of blocked-course events.
func (s *Student) TimesBlocked() int {
	return len(s.BlockedCourses)
}

// DistinctBlockedCourses returns how many distinct courses were ever
// blocked for this student.
func (s *Student) DistinctBlockedCourses() int {
	seen := make(map[string]bool, len(s.BlockedCourses))
	for _, b := range s.BlockedCourses {
		seen[b.Course] = true
	}
	return len(seen)
}
