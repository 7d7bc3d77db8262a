// Package model implements the population-level simulation scheduler. A
// University owns the student agents, the shared course catalog, and the
// global term rotation, and advances every agent once per Step call.
package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/logging"
)

// DefaultRequiredCredits is the graduation credit threshold.
const DefaultRequiredCredits = 120

// DefaultMaxSemesters is the default semester ceiling for Run.
const DefaultMaxSemesters = 12

// SemesterStats is the population aggregate recorded after each step.
type SemesterStats struct {
	Semester  int          `json:"semester"`
	Term      catalog.Term `json:"term"`
	Graduated int          `json:"graduated"`
	Dropped   int          `json:"dropped_out"`
	Enrolled  int          `json:"enrolled"`
	// AvgGPA is the mean GPA over agents with GPA > 0, rounded to 2
	// decimals; 0 when no agent has a recorded grade yet.
	AvgGPA float64 `json:"avg_gpa"`
	// Blocked is the number of blocked-course events this semester.
	Blocked int `json:"blocked"`
}

// Options configures a University model.
type Options struct {
	// RequiredCredits is the graduation credit threshold.
	// Defaults to DefaultRequiredCredits when zero.
	RequiredCredits int

	// Seed seeds the per-agent random sources. Each agent gets its own
	// source derived from Seed and its population index, so per-agent
	// draw sequences are stable regardless of scheduling.
	Seed int64

	// Agent holds the state machine tunables.
	Agent agent.Config

	// Events receives simulation decision events. Nil disables tracing.
	Events *logging.EventLogger
}

// University is the simulation model. Agents are stored in construction
// order, which is also the per-step advancement order and therefore the
// tie-break order for any global reporting.
type University struct {
	Students        []*agent.Student
	Catalog         *catalog.Catalog
	RequiredCredits int

	// SemesterCount is the number of completed Step calls.
	SemesterCount int
	// CurrentTerm is the term of the most recent step.
	CurrentTerm catalog.Term
	// Running is false once no agent is active.
	Running bool

	// History holds one SemesterStats per completed step.
	History []SemesterStats

	events *logging.EventLogger
}

// New constructs a University from student profiles and a shared catalog.
// Malformed profiles are fatal configuration errors.
func New(profiles []agent.Profile, cat *catalog.Catalog, opts Options) (*University, error) {
	if cat == nil {
		return nil, fmt.Errorf("nil catalog")
	}
	if opts.RequiredCredits <= 0 {
		opts.RequiredCredits = DefaultRequiredCredits
	}
	if opts.Agent == (agent.Config{}) {
		opts.Agent = agent.DefaultConfig()
	}

	u := &University{
		Students:        make([]*agent.Student, 0, len(profiles)),
		Catalog:         cat,
		RequiredCredits: opts.RequiredCredits,
		Running:         true,
		events:          opts.Events,
	}

	for i, profile := range profiles {
		if profile.ID == 0 {
			profile.ID = i + 1
		}
		rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
		student, err := agent.New(profile, cat, opts.Agent, u.RequiredCredits, rng)
		if err != nil {
			return nil, fmt.Errorf("student %d: %w", i, err)
		}
		u.Students = append(u.Students, student)
	}

	return u, nil
}

// Step advances the simulation by one semester: it increments the global
// counter, rotates the term, advances every agent exactly once in
// population order, and records the semester's aggregates. Running flips
// to false once no agent remains active.
func (u *University) Step() SemesterStats {
	u.SemesterCount++
	u.CurrentTerm = catalog.TermForSemester(u.SemesterCount)

	blocked := 0
	for _, s := range u.Students {
		res := s.AdvanceSemester(u.CurrentTerm)
		if !res.Advanced {
			continue
		}
		blocked += len(res.Blocked)
		u.logStep(s, res)
	}

	stats := SemesterStats{
		Semester:  u.SemesterCount,
		Term:      u.CurrentTerm,
		Graduated: u.CountGraduated(),
		Dropped:   u.CountDropped(),
		Enrolled:  u.CountEnrolled(),
		AvgGPA:    u.AvgGPA(),
		Blocked:   blocked,
	}
	u.History = append(u.History, stats)

	if stats.Enrolled == 0 {
		u.Running = false
	}
	return stats
}

// Run drives Step up to maxSemesters, stopping early once Running is
// false. It returns the recorded history.
func (u *University) Run(maxSemesters int) []SemesterStats {
	if maxSemesters <= 0 {
		maxSemesters = DefaultMaxSemesters
	}
	for i := 0; i < maxSemesters && u.Running; i++ {
		u.Step()
	}
	return u.History
}

// CountGraduated returns the number of graduated agents.
func (u *University) CountGraduated() int {
	n := 0
	for _, s := range u.Students {
		if s.Graduated {
			n++
		}
	}
	return n
}

// CountDropped returns the number of dropped-out agents.
func (u *University) CountDropped() int {
	n := 0
	for _, s := range u.Students {
		if s.DroppedOut {
			n++
		}
	}
	return n
}

// CountEnrolled returns the number of still-active agents.
func (u *University) CountEnrolled() int {
	n := 0
	for _, s := range u.Students {
		if s.Active() {
			n++
		}
	}
	return n
}

// AvgGPA returns the mean GPA over agents with GPA > 0, rounded to 2
// decimals, or 0 when no agent has one.
func (u *University) AvgGPA() float64 {
	total, n := 0.0, 0
	for _, s := range u.Students {
		if s.GPA > 0 {
			total += s.GPA
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return math.Round(total/float64(n)*100) / 100
}

// logStep emits decision trace events for one agent step.
func (u *University) logStep(s *agent.Student, res agent.StepResult) {
	if u.events == nil {
		return
	}
	for _, b := range res.Blocked {
		u.events.Log(map[string]any{
			"event":           "course_blocked",
			"student":         s.ID,
			"semester":        b.Semester,
			"term":            b.Term,
			"course":          b.Course,
			"missing_prereqs": b.MissingPrereqs,
		})
	}
	if res.DropRule != "" {
		u.events.Log(map[string]any{
			"event":    "dropout",
			"student":  s.ID,
			"semester": s.SemesterNum,
			"rule":     string(res.DropRule),
			"gpa":      s.GPA,
			"credits":  s.CreditsCompleted,
		})
	}
	if res.Graduated {
		u.events.Log(map[string]any{
			"event":    "graduation",
			"student":  s.ID,
			"semester": s.GraduationSemester,
			"gpa":      s.GPA,
			"credits":  s.CreditsCompleted,
		})
	}
}
