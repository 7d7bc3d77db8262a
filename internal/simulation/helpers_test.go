package simulation

import (
	"testing"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/synth"
)

// syntheticCatalog builds the default generated degree catalog.
func syntheticCatalog(t *testing.T) map[string]catalog.Course {
	t.Helper()
	courses, err := synth.GenerateCatalog(synth.DefaultCatalogConfig())
	if err != nil {
		t.Fatalf("GenerateCatalog: %v", err)
	}
	return courses
}

// syntheticStudents builds perTerm students per admission term against
// the given catalog.
func syntheticStudents(t *testing.T, courses map[string]catalog.Course, perTerm int) []agent.Profile {
	t.Helper()
	cat := catalog.New(courses)
	cfg := synth.DefaultConfig()
	cfg.StudentsPerTerm = perTerm
	students, err := synth.GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	return students
}
