// Package catalog defines the course catalog shared by every simulated
// student. A catalog maps course codes to credit, category, prerequisite,
// and term-availability data. It is read-only for the duration of a run.
package catalog

import (
	"sort"
)

// CoreCategory marks courses that must be completed before graduation.
const CoreCategory = "CS Core"

// DefaultCredits is the credit value assumed for courses that do not
// specify one, and for codes missing from the catalog entirely.
const DefaultCredits = 3

// Term is one of the three academic terms in the rotation.
type Term string

const (
	TermFall   Term = "Fall"
	TermSpring Term = "Spring"
	TermSummer Term = "Summer"
)

// Rotation is the global term cycle: Fall -> Spring -> Summer -> Fall...
var Rotation = [3]Term{TermFall, TermSpring, TermSummer}

// TermForSemester returns the term of a 1-based semester index.
// Semester 1 is Fall.
func TermForSemester(semester int) Term {
	if semester < 1 {
		return TermFall
	}
	return Rotation[(semester-1)%3]
}

// Course describes a single catalog entry.
type Course struct {
	Code          string   `json:"-"`
	Name          string   `json:"name,omitempty"`
	Credits       int      `json:"credits"`
	Category      string   `json:"category"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	// Corequisites are carried for data fidelity but are not enforced as an
	// enrollment gate.
	Corequisites []string `json:"corequisites,omitempty"`
	TermsOffered []Term   `json:"terms_offered,omitempty"`
}

// IsCore reports whether the course is mandatory for graduation.
func (c Course) IsCore() bool {
	return c.Category == CoreCategory
}

// Catalog is an immutable collection of courses keyed by code.
type Catalog struct {
	courses map[string]Course
	core    []string
}

// New builds a Catalog from a code->Course map. Courses with a
// non-positive credit value are normalized to DefaultCredits, and each
// Course.Code is set from its map key.
func New(courses map[string]Course) *Catalog {
	normalized := make(map[string]Course, len(courses))
	var core []string
	for code, course := range courses {
		course.Code = code
		if course.Credits <= 0 {
			course.Credits = DefaultCredits
		}
		normalized[code] = course
		if course.IsCore() {
			core = append(core, code)
		}
	}
	sort.Strings(core)
	return &Catalog{courses: normalized, core: core}
}

// Get returns the course for code. Unknown codes resolve to a permissive
// default (DefaultCredits, no prerequisites) rather than an error: a
// catalog gap never fails a semester.
func (c *Catalog) Get(code string) Course {
	if course, ok := c.courses[code]; ok {
		return course
	}
	return Course{Code: code, Credits: DefaultCredits}
}

// Has reports whether code has a real catalog entry.
func (c *Catalog) Has(code string) bool {
	_, ok := c.courses[code]
	return ok
}

// CoreCourses returns the sorted codes of all mandatory-for-graduation
// courses. The returned slice is a copy.
func (c *Catalog) CoreCourses() []string {
	out := make([]string, len(c.core))
	copy(out, c.core)
	return out
}

// Codes returns all catalog codes in sorted order.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.courses))
	for code := range c.courses {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of real catalog entries.
func (c *Catalog) Len() int {
	return len(c.courses)
}
