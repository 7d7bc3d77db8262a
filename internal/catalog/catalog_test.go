package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTermForSemester(t *testing.T) {
	cases := []struct {
		semester int
		want     Term
	}{
		{1, TermFall},
		{2, TermSpring},
		{3, TermSummer},
		{4, TermFall},
		{7, TermFall},
		{8, TermSpring},
	}
	for _, tc := range cases {
		if got := TermForSemester(tc.semester); got != tc.want {
			t.Errorf("TermForSemester(%d) = %s, want %s", tc.semester, got, tc.want)
		}
	}
}

func TestGet_MissingCodeDefaults(t *testing.T) {
	c := New(map[string]Course{
		"COP2210": {Credits: 4, Category: CoreCategory},
	})

	course := c.Get("XXX9999")
	if course.Credits != DefaultCredits {
		t.Errorf("missing course credits = %d, want %d", course.Credits, DefaultCredits)
	}
	if len(course.Prerequisites) != 0 {
		t.Errorf("missing course has prerequisites: %v", course.Prerequisites)
	}
	if c.Has("XXX9999") {
		t.Error("Has reported true for missing code")
	}
}

func TestNew_NormalizesCredits(t *testing.T) {
	c := New(map[string]Course{
		"ENC1101": {Category: "Gen Ed"}, // no credits specified
	})
	if got := c.Get("ENC1101").Credits; got != DefaultCredits {
		t.Errorf("unspecified credits = %d, want %d", got, DefaultCredits)
	}
	if got := c.Get("ENC1101").Code; got != "ENC1101" {
		t.Errorf("course code = %q, want ENC1101", got)
	}
}

func TestCoreCourses_SortedAndCopied(t *testing.T) {
	c := New(map[string]Course{
		"COP4610": {Credits: 3, Category: CoreCategory},
		"COP2210": {Credits: 3, Category: CoreCategory},
		"ENC1101": {Credits: 3, Category: "Gen Ed"},
	})

	core := c.CoreCourses()
	want := []string{"COP2210", "COP4610"}
	if !reflect.DeepEqual(core, want) {
		t.Errorf("CoreCourses() = %v, want %v", core, want)
	}

	// Mutating the returned slice must not affect the catalog.
	core[0] = "mutated"
	if got := c.CoreCourses()[0]; got != "COP2210" {
		t.Errorf("CoreCourses leaked internal state: %q", got)
	}
}

func TestParse_ValidCatalog(t *testing.T) {
	data := []byte(`{
		"MAC2311": {
			"name": "Calculus I",
			"credits": 4,
			"category": "Math",
			"prerequisites": [],
			"corequisites": [],
			"terms_offered": ["Fall", "Spring"]
		},
		"COP2210": {
			"credits": 3,
			"category": "CS Core",
			"prerequisites": ["MAC2311"],
			"terms_offered": ["Fall", "Spring", "Summer"]
		}
	}`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if got := c.Get("MAC2311").Credits; got != 4 {
		t.Errorf("MAC2311 credits = %d, want 4", got)
	}
	if got := c.Get("COP2210").Prerequisites; !reflect.DeepEqual(got, []string{"MAC2311"}) {
		t.Errorf("COP2210 prerequisites = %v", got)
	}
	if !reflect.DeepEqual(c.CoreCourses(), []string{"COP2210"}) {
		t.Errorf("CoreCourses = %v, want [COP2210]", c.CoreCourses())
	}
}

func TestParse_RejectsBadTerm(t *testing.T) {
	data := []byte(`{"COP2210": {"credits": 3, "terms_offered": ["Winter"]}}`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected schema error for unknown term, got nil")
	}
}

func TestParse_RejectsZeroCredits(t *testing.T) {
	data := []byte(`{"COP2210": {"credits": 0}}`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected schema error for zero credits, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(`{"ENC1101": {"credits": 3, "category": "Gen Ed"}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !c.Has("ENC1101") {
		t.Error("loaded catalog missing ENC1101")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
