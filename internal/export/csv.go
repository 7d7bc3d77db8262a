// Package export writes finished-run results to files: CSV for
// spreadsheet-friendly consumption and Arrow IPC for columnar analysis
// pipelines.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
)

// WriteSemesterStatsCSV writes the per-semester trajectory to path.
func WriteSemesterStatsCSV(path string, history []model.SemesterStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"semester", "term", "graduated", "dropped_out", "enrolled", "avg_gpa", "blocked"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, st := range history {
		row := []string{
			strconv.Itoa(st.Semester),
			string(st.Term),
			strconv.Itoa(st.Graduated),
			strconv.Itoa(st.Dropped),
			strconv.Itoa(st.Enrolled),
			strconv.FormatFloat(st.AvgGPA, 'f', 2, 64),
			strconv.Itoa(st.Blocked),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing semester %d: %w", st.Semester, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteStudentOutcomesCSV writes one terminal row per student to path.
func WriteStudentOutcomesCSV(path string, students []outcomes.StudentRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"student_id", "admission_term", "academic_ability", "credits_completed",
		"gpa", "graduated", "dropped_out", "drop_rule", "semesters_enrolled",
		"graduation_semester", "times_blocked", "distinct_courses_blocked",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range students {
		gradSem := ""
		if s.GraduationSemester != nil {
			gradSem = strconv.Itoa(*s.GraduationSemester)
		}
		row := []string{
			strconv.Itoa(s.ID),
			string(s.AdmissionTerm),
			strconv.FormatFloat(s.AcademicAbility, 'f', 2, 64),
			strconv.Itoa(s.Credits),
			strconv.FormatFloat(s.GPA, 'f', 2, 64),
			strconv.FormatBool(s.Graduated),
			strconv.FormatBool(s.DroppedOut),
			string(s.DropRule),
			strconv.Itoa(s.SemestersEnrolled),
			gradSem,
			strconv.Itoa(s.TimesBlocked),
			strconv.Itoa(s.DistinctCoursesBlocked),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing student %d: %w", s.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteBlockedCoursesCSV writes every prerequisite blockage to path.
func WriteBlockedCoursesCSV(path string, blocked []outcomes.BlockedEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"student_id", "semester", "term", "course", "missing_prereqs"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, b := range blocked {
		row := []string{
			strconv.Itoa(b.StudentID),
			strconv.Itoa(b.Semester),
			string(b.Term),
			b.Course,
			strings.Join(b.MissingPrereqs, ";"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing blocked event for student %d: %w", b.StudentID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
