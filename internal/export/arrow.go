package export

import (
	"fmt"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/theharshitsuri/digital-twin-sim/internal/agent"
	"github.com/theharshitsuri/digital-twin-sim/internal/catalog"
	"github.com/theharshitsuri/digital-twin-sim/internal/outcomes"
)

// OutcomesSchema describes the columnar layout of the student outcomes
// export. graduation_semester is the only nullable column; it is null
// for every non-graduate.
var OutcomesSchema = arrow.NewSchema([]arrow.Field{
	{Name: "student_id", Type: arrow.PrimitiveTypes.Int64},
	{Name: "admission_term", Type: arrow.BinaryTypes.String},
	{Name: "academic_ability", Type: arrow.PrimitiveTypes.Float64},
	{Name: "credits_completed", Type: arrow.PrimitiveTypes.Int64},
	{Name: "gpa", Type: arrow.PrimitiveTypes.Float64},
	{Name: "graduated", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "dropped_out", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "drop_rule", Type: arrow.BinaryTypes.String},
	{Name: "semesters_enrolled", Type: arrow.PrimitiveTypes.Int64},
	{Name: "graduation_semester", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: "times_blocked", Type: arrow.PrimitiveTypes.Int64},
	{Name: "distinct_courses_blocked", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// WriteStudentOutcomesArrow writes one record batch of terminal student
// rows to path in Arrow IPC file format.
func WriteStudentOutcomesArrow(path string, students []outcomes.StudentRecord) error {
	b := array.NewRecordBuilder(memory.DefaultAllocator, OutcomesSchema)
	defer b.Release()

	for _, s := range students {
		b.Field(0).(*array.Int64Builder).Append(int64(s.ID))
		b.Field(1).(*array.StringBuilder).Append(string(s.AdmissionTerm))
		b.Field(2).(*array.Float64Builder).Append(s.AcademicAbility)
		b.Field(3).(*array.Int64Builder).Append(int64(s.Credits))
		b.Field(4).(*array.Float64Builder).Append(s.GPA)
		b.Field(5).(*array.BooleanBuilder).Append(s.Graduated)
		b.Field(6).(*array.BooleanBuilder).Append(s.DroppedOut)
		b.Field(7).(*array.StringBuilder).Append(string(s.DropRule))
		b.Field(8).(*array.Int64Builder).Append(int64(s.SemestersEnrolled))
		if s.GraduationSemester != nil {
			b.Field(9).(*array.Int64Builder).Append(int64(*s.GraduationSemester))
		} else {
			b.Field(9).(*array.Int64Builder).AppendNull()
		}
		b.Field(10).(*array.Int64Builder).Append(int64(s.TimesBlocked))
		b.Field(11).(*array.Int64Builder).Append(int64(s.DistinctCoursesBlocked))
	}

	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(OutcomesSchema))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("writing record batch: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}
	return nil
}

// ReadStudentOutcomesArrow reads back an outcomes export. It exists for
// verification and for feeding a previous run's outcomes into analysis
// tooling without re-running the simulation.
func ReadStudentOutcomesArrow(path string) ([]outcomes.StudentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, fmt.Errorf("opening arrow file: %w", err)
	}
	defer r.Close()

	var students []outcomes.StudentRecord
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("reading record batch %d: %w", i, err)
		}
		ids := rec.Column(0).(*array.Int64)
		terms := rec.Column(1).(*array.String)
		abilities := rec.Column(2).(*array.Float64)
		credits := rec.Column(3).(*array.Int64)
		gpas := rec.Column(4).(*array.Float64)
		graduated := rec.Column(5).(*array.Boolean)
		dropped := rec.Column(6).(*array.Boolean)
		rules := rec.Column(7).(*array.String)
		enrolled := rec.Column(8).(*array.Int64)
		gradSems := rec.Column(9).(*array.Int64)
		blocked := rec.Column(10).(*array.Int64)
		distinct := rec.Column(11).(*array.Int64)

		for row := 0; row < int(rec.NumRows()); row++ {
			s := outcomes.StudentRecord{
				ID:                     int(ids.Value(row)),
				AdmissionTerm:          catalog.Term(terms.Value(row)),
				AcademicAbility:        abilities.Value(row),
				Credits:                int(credits.Value(row)),
				GPA:                    gpas.Value(row),
				Graduated:              graduated.Value(row),
				DroppedOut:             dropped.Value(row),
				DropRule:               agent.DropRule(rules.Value(row)),
				SemestersEnrolled:      int(enrolled.Value(row)),
				TimesBlocked:           int(blocked.Value(row)),
				DistinctCoursesBlocked: int(distinct.Value(row)),
			}
			if gradSems.IsValid(row) {
				sem := int(gradSems.Value(row))
				s.GraduationSemester = &sem
			}
			students = append(students, s)
		}
	}
	return students, nil
}
