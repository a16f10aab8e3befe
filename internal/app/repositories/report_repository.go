package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/logger"
)

// ReportRepository reads the data behind the intelligence report
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CourseStudentRows returns every course with its enrolled students, one row per
// enrollment. Courses without enrollments appear once with nil student columns.
// Rows are ordered by course, then enrollment time, then student id.
func (r *ReportRepository) CourseStudentRows(ctx context.Context) ([]models.CourseStudentRow, error) {
	sql, args, err := r.sb.Select("c.id", "c.title", "s.id", "s.name", "s.email", "s.birth_date").
		From("courses c").
		LeftJoin("enrollments e ON e.course_id = c.id").
		LeftJoin("students s ON s.id = e.student_id").
		OrderBy("c.id", "e.created_at", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing report query")
		return nil, fmt.Errorf("error loading report rows: %w", err)
	}
	defer rows.Close()

	result := make([]models.CourseStudentRow, 0)
	for rows.Next() {
		var row models.CourseStudentRow
		if err := rows.Scan(&row.CourseID, &row.CourseTitle, &row.StudentID, &row.StudentName, &row.StudentEmail, &row.BirthDate); err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return result, nil
}
