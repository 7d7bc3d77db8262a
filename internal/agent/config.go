package agent

import "fmt"

// Config holds the tunable parameters of the semester state machine.
// Defaults reproduce the recorded attrition model.
type Config struct {
	// EarlyAttritionFrom/Through bound the semester window (inclusive)
	// in which low-ability students face early attrition. Default: 2-4.
	EarlyAttritionFrom    int `yaml:"early_attrition_from"`
	EarlyAttritionThrough int `yaml:"early_attrition_through"`

	// EarlyAttritionAbility is the ability threshold below which early
	// attrition applies. Default: 0.65.
	EarlyAttritionAbility float64 `yaml:"early_attrition_ability"`

	// EarlyAttritionChance is the per-semester dropout probability inside
	// the early attrition window. Default: 0.15.
	EarlyAttritionChance float64 `yaml:"early_attrition_chance"`

	// ProbationAfterSemester is the last semester exempt from academic
	// probation; the GPA check applies strictly after it. Default: 3.
	ProbationAfterSemester int `yaml:"probation_after_semester"`

	// ProbationGPA is the GPA below which a semester counts toward the
	// probation streak. Default: 2.0.
	ProbationGPA float64 `yaml:"probation_gpa"`

	// ProbationStreak is the number of consecutive low-GPA semesters that
	// forces a dropout. Default: 2.
	ProbationStreak int `yaml:"probation_streak"`

	// StagnationSemester and StagnationCredits define the stagnation
	// rule: a student entering StagnationSemester with fewer than
	// StagnationCredits credits drops out unconditionally. Default: 5, 12.
	StagnationSemester int `yaml:"stagnation_semester"`
	StagnationCredits  int `yaml:"stagnation_credits"`

	// LateAttritionFrom is the first semester of random late attrition.
	// Default: 6.
	LateAttritionFrom int `yaml:"late_attrition_from"`

	// LateAttritionChance is the per-semester late attrition probability.
	// Default: 0.02.
	LateAttritionChance float64 `yaml:"late_attrition_chance"`

	// Grades holds the ability-driven grade distribution parameters.
	Grades GradeWeights `yaml:"-"`
}

// DefaultConfig returns the recorded state machine parameters.
func DefaultConfig() Config {
	return Config{
		EarlyAttritionFrom:     2,
		EarlyAttritionThrough:  4,
		EarlyAttritionAbility:  0.65,
		EarlyAttritionChance:   0.15,
		ProbationAfterSemester: 3,
		ProbationGPA:           2.0,
		ProbationStreak:        2,
		StagnationSemester:     5,
		StagnationCredits:      12,
		LateAttritionFrom:      6,
		LateAttritionChance:    0.02,
		Grades:                 DefaultGradeWeights(),
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.EarlyAttritionChance < 0 || c.EarlyAttritionChance > 1 {
		return fmt.Errorf("early_attrition_chance must be in [0,1], got %v", c.EarlyAttritionChance)
	}
	if c.LateAttritionChance < 0 || c.LateAttritionChance > 1 {
		return fmt.Errorf("late_attrition_chance must be in [0,1], got %v", c.LateAttritionChance)
	}
	if c.ProbationGPA < 0 || c.ProbationGPA > 4 {
		return fmt.Errorf("probation_gpa must be in [0,4], got %v", c.ProbationGPA)
	}
	if c.ProbationStreak < 1 {
		return fmt.Errorf("probation_streak must be >= 1, got %d", c.ProbationStreak)
	}
	if c.Grades.Floor <= 0 {
		return fmt.Errorf("grade weight floor must be positive, got %v", c.Grades.Floor)
	}
	return nil
}
