package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/model"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
)

// RunRecord is the top-level row describing one persisted run.
type RunRecord struct {
	ID              string
	CreatedAt       time.Time
	Seed            int64
	RequiredCredits int
	MaxSemesters    int
	SemestersRun    int
	Students        int
	Graduated       int
	Dropped         int
	Enrolled        int
	AvgGPA          float64
}

// ResultsStore persists simulation results to a SQLite database.
type ResultsStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the results database at path.
func Open(path string) (*ResultsStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &ResultsStore{db: db}, nil
}

// Close closes the underlying database.
func (s *ResultsStore) Close() error {
	return s.db.Close()
}

// SaveRun persists a finished run under a fresh run ID and returns it.
// The run row, semester trajectory, per-student outcomes, and blocked
// events are written in one transaction.
func (s *ResultsStore) SaveRun(ctx context.Context, rec RunRecord, history []model.SemesterStats, report outcomes.Report) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, seed, required_credits, max_semesters,
			semesters_run, students, graduated, dropped, enrolled, avg_gpa)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339), rec.Seed, rec.RequiredCredits,
		rec.MaxSemesters, rec.SemestersRun, rec.Students, rec.Graduated,
		rec.Dropped, rec.Enrolled, rec.AvgGPA); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, st := range history {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO semester_stats (run_id, semester, term, graduated,
				dropped, enrolled, avg_gpa, blocked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, st.Semester, string(st.Term), st.Graduated, st.Dropped,
			st.Enrolled, st.AvgGPA, st.Blocked); err != nil {
			return "", fmt.Errorf("failed to insert semester %d: %w", st.Semester, err)
		}
	}

	for _, sr := range report.Students {
		var gradSem sql.NullInt64
		if sr.GraduationSemester != nil {
			gradSem = sql.NullInt64{Int64: int64(*sr.GraduationSemester), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO student_outcomes (run_id, student_id, admission_term,
				academic_ability, credits_completed, gpa, graduated, dropped_out,
				drop_rule, semesters_enrolled, graduation_semester, times_blocked,
				distinct_courses_blocked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, sr.ID, string(sr.AdmissionTerm), sr.AcademicAbility,
			sr.Credits, sr.GPA, sr.Graduated, sr.DroppedOut, string(sr.DropRule),
			sr.SemestersEnrolled, gradSem, sr.TimesBlocked,
			sr.DistinctCoursesBlocked); err != nil {
			return "", fmt.Errorf("failed to insert student %d: %w", sr.ID, err)
		}
	}

	for _, b := range report.Blocked {
		prereqs, err := json.Marshal(b.MissingPrereqs)
		if err != nil {
			return "", fmt.Errorf("marshal missing prereqs: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO blocked_courses (run_id, student_id, semester, term,
				course, missing_prereqs)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, b.StudentID, b.Semester, string(b.Term), b.Course,
			string(prereqs)); err != nil {
			return "", fmt.Errorf("failed to insert blocked event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return rec.ID, nil
}

// GetRun returns the run row for id.
func (s *ResultsStore) GetRun(ctx context.Context, id string) (RunRecord, error) {
	var (
		rec     RunRecord
		created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, seed, required_credits, max_semesters,
			semesters_run, students, graduated, dropped, enrolled, avg_gpa
		FROM runs WHERE id = ?`, id).Scan(
		&rec.ID, &created, &rec.Seed, &rec.RequiredCredits, &rec.MaxSemesters,
		&rec.SemestersRun, &rec.Students, &rec.Graduated, &rec.Dropped,
		&rec.Enrolled, &rec.AvgGPA)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	return rec, nil
}

// ListRuns returns all run rows, most recent first.
func (s *ResultsStore) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, seed, required_credits, max_semesters,
			semesters_run, students, graduated, dropped, enrolled, avg_gpa
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var (
			rec     RunRecord
			created string
		)
		if err := rows.Scan(&rec.ID, &created, &rec.Seed, &rec.RequiredCredits,
			&rec.MaxSemesters, &rec.SemestersRun, &rec.Students, &rec.Graduated,
			&rec.Dropped, &rec.Enrolled, &rec.AvgGPA); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SemesterStats returns the per-semester trajectory of a run in order.
func (s *ResultsStore) SemesterStats(ctx context.Context, runID string) ([]model.SemesterStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT semester, term, graduated, dropped, enrolled, avg_gpa, blocked
		FROM semester_stats WHERE run_id = ? ORDER BY semester`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load semester stats: %w", err)
	}
	defer rows.Close()

	var stats []model.SemesterStats
	for rows.Next() {
		var (
			st   model.SemesterStats
			term string
		)
		if err := rows.Scan(&st.Semester, &term, &st.Graduated, &st.Dropped,
			&st.Enrolled, &st.AvgGPA, &st.Blocked); err != nil {
			return nil, fmt.Errorf("failed to scan semester stats: %w", err)
		}
		st.Term = catalog.Term(term)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// BlockedCourseCount is one row of the per-course blockage aggregate.
type BlockedCourseCount struct {
	Course string
	Count  int
}

// TopBlockedCourses returns the n most frequently blocked courses of a
// run, most blocked first, ties broken by course code.
func (s *ResultsStore) TopBlockedCourses(ctx context.Context, runID string, n int) ([]BlockedCourseCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT course, COUNT(*) AS cnt
		FROM blocked_courses WHERE run_id = ?
		GROUP BY course ORDER BY cnt DESC, course LIMIT ?`, runID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked courses: %w", err)
	}
	defer rows.Close()

	var counts []BlockedCourseCount
	for rows.Next() {
		var c BlockedCourseCount
		if err := rows.Scan(&c.Course, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan blocked course: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
