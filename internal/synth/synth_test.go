package synth

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	courses, err := GenerateCatalog(DefaultCatalogConfig())
	if err != nil {
		t.Fatalf("GenerateCatalog: %v", err)
	}
	return catalog.New(courses)
}

func TestGenerateCatalog_Shape(t *testing.T) {
	cfg := DefaultCatalogConfig()
	courses, err := GenerateCatalog(cfg)
	if err != nil {
		t.Fatalf("GenerateCatalog: %v", err)
	}
	want := cfg.CoreCourses + cfg.MathCourses + cfg.GenEdCourses + cfg.ElectiveCourses
	if len(courses) != want {
		t.Fatalf("got %d courses, want %d", len(courses), want)
	}

	core := 0
	for code, c := range courses {
		if c.Category == catalog.CoreCategory {
			core++
		}
		for _, p := range c.Prerequisites {
			if _, ok := courses[p]; !ok {
				t.Errorf("course %s has unknown prerequisite %s", code, p)
			}
		}
	}
	if core != cfg.CoreCourses {
		t.Errorf("got %d core courses, want %d", core, cfg.CoreCourses)
	}
}

func TestGenerateCatalog_CoreChain(t *testing.T) {
	courses, err := GenerateCatalog(DefaultCatalogConfig())
	if err != nil {
		t.Fatalf("GenerateCatalog: %v", err)
	}
	if got := courses["COP1000"].Prerequisites; len(got) != 0 {
		t.Errorf("first core course has prerequisites %v", got)
	}
	if got := courses["COP1100"].Prerequisites; !reflect.DeepEqual(got, []string{"COP1000"}) {
		t.Errorf("COP1100 prerequisites = %v, want [COP1000]", got)
	}
}

func TestGenerateStudents_CohortsPerTerm(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.StudentsPerTerm = 20

	profiles, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	if len(profiles) != 60 {
		t.Fatalf("got %d profiles, want 60", len(profiles))
	}

	counts := make(map[catalog.Term]int)
	seen := make(map[int]bool)
	for _, p := range profiles {
		counts[p.AdmissionTerm]++
		if seen[p.ID] {
			t.Errorf("duplicate student id %d", p.ID)
		}
		seen[p.ID] = true
	}
	for _, term := range catalog.Rotation {
		if counts[term] != 20 {
			t.Errorf("term %s cohort = %d, want 20", term, counts[term])
		}
	}
}

func TestGenerateStudents_AttributeRanges(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.StudentsPerTerm = 50

	profiles, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	for _, p := range profiles {
		if p.AcademicAbility < cfg.AbilityMin || p.AcademicAbility > cfg.AbilityMax {
			t.Errorf("student %d ability %v outside [%v, %v]", p.ID, p.AcademicAbility, cfg.AbilityMin, cfg.AbilityMax)
		}
		if p.DropoutChance < cfg.DropoutMin || p.DropoutChance > cfg.DropoutMax {
			t.Errorf("student %d dropout chance %v outside [%v, %v]", p.ID, p.DropoutChance, cfg.DropoutMin, cfg.DropoutMax)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("student %d invalid: %v", p.ID, err)
		}
	}
}

func TestGenerateStudents_PlansCoverCore(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.StudentsPerTerm = 10

	profiles, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	for _, p := range profiles {
		planned := make(map[string]bool)
		for sem, courses := range p.StudyPlan {
			n, err := strconv.Atoi(sem)
			if err != nil || n < 1 || n > cfg.MaxPlanSemesters {
				t.Errorf("student %d has bad plan semester %q", p.ID, sem)
			}
			if len(courses) > 5 {
				t.Errorf("student %d semester %s has %d courses", p.ID, sem, len(courses))
			}
			credits := 0
			for _, code := range courses {
				if planned[code] {
					t.Errorf("student %d schedules %s twice", p.ID, code)
				}
				planned[code] = true
				credits += cat.Get(code).Credits
			}
			if credits > cfg.MaxCreditsPerSemester {
				t.Errorf("student %d semester %s plans %d credits", p.ID, sem, credits)
			}
		}
		for _, core := range cat.CoreCourses() {
			if !planned[core] {
				t.Errorf("student %d plan omits core course %s", p.ID, core)
			}
		}
	}
}

func TestGenerateStudents_PlansRespectPrerequisites(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.StudentsPerTerm = 10

	profiles, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	for _, p := range profiles {
		semesterOf := make(map[string]int)
		for sem, courses := range p.StudyPlan {
			n, _ := strconv.Atoi(sem)
			for _, code := range courses {
				semesterOf[code] = n
			}
		}
		for code, sem := range semesterOf {
			for _, prereq := range cat.Get(code).Prerequisites {
				pSem, ok := semesterOf[prereq]
				if !ok {
					t.Errorf("student %d plans %s without its prerequisite %s", p.ID, code, prereq)
				} else if pSem >= sem {
					t.Errorf("student %d plans %s in semester %d but prerequisite %s in %d", p.ID, code, sem, prereq, pSem)
				}
			}
		}
	}
}

func TestGenerateStudents_Deterministic(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.StudentsPerTerm = 5

	a, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	b, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different populations")
	}

	cfg.Seed++
	c, err := GenerateStudents(cat, cfg)
	if err != nil {
		t.Fatalf("GenerateStudents: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical populations")
	}
}

func TestGenerateStudents_RejectsBadConfig(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.AbilityMin = 1.5
	if _, err := GenerateStudents(cat, cfg); err == nil {
		t.Error("expected error for ability_min > 1")
	}
}
