package synth

import (
	"fmt"
	"math/rand"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

// CatalogConfig controls synthetic catalog shape.
type CatalogConfig struct {
	CoreCourses     int   `yaml:"core_courses"`
	MathCourses     int   `yaml:"math_courses"`
	GenEdCourses    int   `yaml:"gen_ed_courses"`
	ElectiveCourses int   `yaml:"elective_courses"`
	Seed            int64 `yaml:"seed"`
}

// DefaultCatalogConfig returns a catalog shape totaling 40 courses,
// 120 credits at the default 3 credits per course.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		CoreCourses:     12,
		MathCourses:     6,
		GenEdCourses:    12,
		ElectiveCourses: 10,
		Seed:            42,
	}
}

var allTerms = []catalog.Term{catalog.TermFall, catalog.TermSpring, catalog.TermSummer}

// GenerateCatalog builds a synthetic degree catalog. Core courses form
// a strict prerequisite chain so bottleneck effects are observable;
// electives pick up to two prerequisites from the early core sequence.
func GenerateCatalog(cfg CatalogConfig) (map[string]catalog.Course, error) {
	if cfg.CoreCourses < 1 {
		return nil, fmt.Errorf("core_courses must be >= 1, got %d", cfg.CoreCourses)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	courses := make(map[string]catalog.Course)

	var coreCodes []string
	for i := 0; i < cfg.CoreCourses; i++ {
		code := fmt.Sprintf("COP%d", 1000+i*100)
		var prereqs []string
		if i > 0 {
			prereqs = []string{coreCodes[i-1]}
		}
		courses[code] = catalog.Course{
			Code:          code,
			Name:          fmt.Sprintf("Core Computing %d", i+1),
			Credits:       3,
			Category:      catalog.CoreCategory,
			Prerequisites: prereqs,
			TermsOffered:  append([]catalog.Term(nil), allTerms...),
		}
		coreCodes = append(coreCodes, code)
	}

	for i := 0; i < cfg.MathCourses; i++ {
		code := fmt.Sprintf("MAC%d", 2000+i*100)
		var prereqs []string
		if i > 0 {
			prereqs = []string{fmt.Sprintf("MAC%d", 2000+(i-1)*100)}
		}
		courses[code] = catalog.Course{
			Code:          code,
			Name:          fmt.Sprintf("Mathematics %d", i+1),
			Credits:       3,
			Category:      "Mathematics",
			Prerequisites: prereqs,
			TermsOffered:  randomTerms(rng),
		}
	}

	for i := 0; i < cfg.GenEdCourses; i++ {
		code := fmt.Sprintf("GEB%d", 1000+i*100)
		courses[code] = catalog.Course{
			Code:         code,
			Name:         fmt.Sprintf("General Education %d", i+1),
			Credits:      3,
			Category:     "General Education",
			TermsOffered: append([]catalog.Term(nil), allTerms...),
		}
	}

	for i := 0; i < cfg.ElectiveCourses; i++ {
		code := fmt.Sprintf("CIS%d", 4000+i*100)
		var prereqs []string
		for _, core := range coreCodes[:min(3, len(coreCodes))] {
			if rng.Float64() < 0.4 {
				prereqs = append(prereqs, core)
			}
		}
		courses[code] = catalog.Course{
			Code:          code,
			Name:          fmt.Sprintf("Computing Elective %d", i+1),
			Credits:       3,
			Category:      "Elective",
			Prerequisites: prereqs,
			TermsOffered:  randomTerms(rng),
		}
	}

	return courses, nil
}

// randomTerms always offers Fall and Spring; Summer offerings are
// sparser, matching real scheduling patterns.
func randomTerms(rng *rand.Rand) []catalog.Term {
	terms := []catalog.Term{catalog.TermFall, catalog.TermSpring}
	if rng.Float64() < 0.5 {
		terms = append(terms, catalog.TermSummer)
	}
	return terms
}
