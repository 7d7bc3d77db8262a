package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

// Profile is the external record a student agent is constructed from.
// StudyPlan keys are 1-based semester indexes, kept as strings for JSON
// fidelity with the generator output.
type Profile struct {
	ID              int                 `json:"id"`
	AcademicAbility float64             `json:"academic_ability"`
	DropoutChance   float64             `json:"dropout_chance"`
	PredictedGPA    float64             `json:"predicted_gpa,omitempty"`
	AdmissionTerm   catalog.Term        `json:"admission_term,omitempty"`
	SATScore        int                 `json:"sat_score,omitempty"`
	StudyPlan       map[string][]string `json:"study_plan,omitempty"`
}

// Validate checks the profile for construction-time configuration errors.
func (p Profile) Validate() error {
	if p.AcademicAbility < 0 || p.AcademicAbility > 1 {
		return fmt.Errorf("student %d: academic_ability must be in [0,1], got %v", p.ID, p.AcademicAbility)
	}
	if p.DropoutChance < 0 || p.DropoutChance > 1 {
		return fmt.Errorf("student %d: dropout_chance must be in [0,1], got %v", p.ID, p.DropoutChance)
	}
	for key := range p.StudyPlan {
		sem, err := strconv.Atoi(key)
		if err != nil || sem < 1 {
			return fmt.Errorf("student %d: study_plan key %q is not a positive semester index", p.ID, key)
		}
	}
	return nil
}

// plan converts the string-keyed study plan into semester-indexed form.
// Validate must have accepted the profile first.
func (p Profile) plan() map[int][]string {
	out := make(map[int][]string, len(p.StudyPlan))
	for key, courses := range p.StudyPlan {
		sem, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		// The agent must never alias the caller's slices.
		out[sem] = append([]string(nil), courses...)
	}
	return out
}

// planSemesters returns the plan's semester indexes in ascending order.
func planSemesters(plan map[int][]string) []int {
	sems := make([]int, 0, len(plan))
	for sem := range plan {
		sems = append(sems, sem)
	}
	sort.Ints(sems)
	return sems
}

// profilesSchema validates the on-disk student profile format. Ability
// and dropout chance are required; everything else is passthrough.
const profilesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["academic_ability", "dropout_chance"],
		"properties": {
			"id": {"type": "integer"},
			"academic_ability": {"type": "number", "minimum": 0, "maximum": 1},
			"dropout_chance": {"type": "number", "minimum": 0, "maximum": 1},
			"predicted_gpa": {"type": "number", "minimum": 0, "maximum": 4},
			"admission_term": {"enum": ["Fall", "Spring", "Summer"]},
			"sat_score": {"type": "integer"},
			"study_plan": {
				"type": "object",
				"additionalProperties": {
					"type": "array",
					"items": {"type": "string"}
				}
			}
		},
		"additionalProperties": true
	}
}`

// ParseProfiles decodes and validates a JSON array of student profiles.
func ParseProfiles(data []byte) ([]Profile, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profilesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating profiles: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid profiles: %s", strings.Join(msgs, "; "))
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// LoadProfilesFile reads and parses a student profile JSON file.
func LoadProfilesFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	profiles, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}
