// Package synth generates synthetic course catalogs and student
// populations for simulation runs. Generation is a one-shot data
// construction step: output is written before a run and never consulted
// again by the core.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

// Config holds population generation parameters.
type Config struct {
	// StudentsPerTerm is the cohort size generated for each admission
	// term. Default: 1000.
	StudentsPerTerm int `yaml:"students_per_term"`

	// TargetCourses is the number of catalog courses each study plan
	// tries to schedule. Default: 40 (~120 credits at 3 each).
	TargetCourses int `yaml:"target_courses"`

	// MaxPlanSemesters caps how many semesters a plan may span.
	// Default: 12.
	MaxPlanSemesters int `yaml:"max_plan_semesters"`

	// MaxCreditsPerSemester caps planned credits per semester.
	// Default: 15.
	MaxCreditsPerSemester int `yaml:"max_credits_per_semester"`

	// CourseLoadChoices are the per-semester course-count caps drawn
	// uniformly. Default: 3, 4, 5.
	CourseLoadChoices []int `yaml:"course_load_choices"`

	// AbilityMin/AbilityMax bound the generated academic ability.
	// Default: 0.5-0.95.
	AbilityMin float64 `yaml:"ability_min"`
	AbilityMax float64 `yaml:"ability_max"`

	// DropoutMin/DropoutMax bound the generated base dropout chance.
	// Default: 0.05-0.2.
	DropoutMin float64 `yaml:"dropout_min"`
	DropoutMax float64 `yaml:"dropout_max"`

	// Seed seeds the generator's random source.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns generation parameters matching the recorded
// synthetic cohorts.
func DefaultConfig() Config {
	return Config{
		StudentsPerTerm:       1000,
		TargetCourses:         40,
		MaxPlanSemesters:      12,
		MaxCreditsPerSemester: 15,
		CourseLoadChoices:     []int{3, 4, 5},
		AbilityMin:            0.5,
		AbilityMax:            0.95,
		DropoutMin:            0.05,
		DropoutMax:            0.2,
		Seed:                  42,
	}
}

// Validate checks generation parameters.
func (c Config) Validate() error {
	if c.StudentsPerTerm < 1 {
		return fmt.Errorf("students_per_term must be >= 1, got %d", c.StudentsPerTerm)
	}
	if c.AbilityMin < 0 || c.AbilityMax > 1 || c.AbilityMin > c.AbilityMax {
		return fmt.Errorf("ability range [%v, %v] invalid", c.AbilityMin, c.AbilityMax)
	}
	if c.DropoutMin < 0 || c.DropoutMax > 1 || c.DropoutMin > c.DropoutMax {
		return fmt.Errorf("dropout range [%v, %v] invalid", c.DropoutMin, c.DropoutMax)
	}
	if len(c.CourseLoadChoices) == 0 {
		return fmt.Errorf("course_load_choices must not be empty")
	}
	return nil
}

// GenerateStudents builds one cohort of student profiles per term,
// each with a study plan that schedules every core course. Output is
// deterministic for a given config and catalog.
func GenerateStudents(cat *catalog.Catalog, cfg Config) ([]agent.Profile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid synth config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var profiles []agent.Profile
	id := 1
	for _, term := range catalog.Rotation {
		for i := 0; i < cfg.StudentsPerTerm; i++ {
			profiles = append(profiles, generateStudent(id, term, cat, cfg, rng))
			id++
		}
	}
	return profiles, nil
}

// generateStudent builds a single profile. Plans respect prerequisite
// ordering (a course is only scheduled after a semester containing all
// its prerequisites) and schedule core courses as early as possible so
// every plan can satisfy the graduation requirement.
func generateStudent(id int, term catalog.Term, cat *catalog.Catalog, cfg Config, rng *rand.Rand) agent.Profile {
	core := make(map[string]bool)
	for _, code := range cat.CoreCourses() {
		core[code] = true
	}

	plan := make(map[string][]string)
	scheduled := make(map[string]bool)
	coreLeft := len(core)

	for semester := 1; semester <= cfg.MaxPlanSemesters && (coreLeft > 0 || len(scheduled) < cfg.TargetCourses); semester++ {
		// Courses become eligible once every prerequisite sits in an
		// earlier plan semester.
		var eligibleCore, eligibleOther []string
		for _, code := range cat.Codes() {
			if scheduled[code] || !prereqsScheduled(cat, code, scheduled) {
				continue
			}
			if core[code] {
				eligibleCore = append(eligibleCore, code)
			} else {
				eligibleOther = append(eligibleOther, code)
			}
		}
		rng.Shuffle(len(eligibleCore), func(i, j int) {
			eligibleCore[i], eligibleCore[j] = eligibleCore[j], eligibleCore[i]
		})
		rng.Shuffle(len(eligibleOther), func(i, j int) {
			eligibleOther[i], eligibleOther[j] = eligibleOther[j], eligibleOther[i]
		})
		candidates := append(eligibleCore, eligibleOther...)

		maxCourses := cfg.CourseLoadChoices[rng.Intn(len(cfg.CourseLoadChoices))]
		var semesterCourses []string
		credits := 0
		for _, code := range candidates {
			if len(semesterCourses) >= maxCourses {
				break
			}
			// Past the course target only core still gets scheduled.
			if !core[code] && len(scheduled) >= cfg.TargetCourses {
				continue
			}
			c := cat.Get(code).Credits
			if credits+c > cfg.MaxCreditsPerSemester {
				continue
			}
			semesterCourses = append(semesterCourses, code)
			scheduled[code] = true
			credits += c
			if core[code] {
				coreLeft--
			}
		}

		if len(semesterCourses) > 0 {
			plan[strconv.Itoa(semester)] = semesterCourses
		}
	}

	return agent.Profile{
		ID:              id,
		AcademicAbility: round2(cfg.AbilityMin + rng.Float64()*(cfg.AbilityMax-cfg.AbilityMin)),
		DropoutChance:   round2(cfg.DropoutMin + rng.Float64()*(cfg.DropoutMax-cfg.DropoutMin)),
		AdmissionTerm:   term,
		StudyPlan:       plan,
	}
}

// prereqsScheduled reports whether every prerequisite of code already
// sits in an earlier plan semester.
func prereqsScheduled(cat *catalog.Catalog, code string, scheduled map[string]bool) bool {
	for _, p := range cat.Get(code).Prerequisites {
		if !scheduled[p] {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
