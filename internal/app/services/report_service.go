package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// ReportService builds the course intelligence report
type ReportService interface {
	IntelligenceReport(ctx context.Context) ([]dto.CourseIntelligence, error)
}

type reportServiceImpl struct {
	reportRepo repositories.IReportRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewReportService creates a new report service instance
func NewReportService(reportRepo repositories.IReportRepository, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// IntelligenceReport returns one entry per course, ordered by course id
func (s *reportServiceImpl) IntelligenceReport(ctx context.Context) ([]dto.CourseIntelligence, error) {
	rows, err := s.reportRepo.CourseStudentRows(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load intelligence report rows")
		return nil, fmt.Errorf("error building intelligence report: %w", err)
	}
	return BuildIntelligenceReport(rows, s.now()), nil
}

// BuildIntelligenceReport aggregates rows grouped by course, in the order the
// courses first appear. Only students with a birth date count. Ties for
// youngest and oldest go to the first student encountered.
func BuildIntelligenceReport(rows []models.CourseStudentRow, now time.Time) []dto.CourseIntelligence {
	report := make([]dto.CourseIntelligence, 0)
	index := make(map[int64]int)
	sums := make(map[int64]int)

	for _, row := range rows {
		i, seen := index[row.CourseID]
		if !seen {
			i = len(report)
			index[row.CourseID] = i
			report = append(report, dto.CourseIntelligence{
				CourseID:    row.CourseID,
				CourseTitle: row.CourseTitle,
			})
		}

		if row.StudentID == nil || row.BirthDate == nil {
			continue
		}

		entry := &report[i]
		student := &dto.StudentAge{
			ID:    *row.StudentID,
			Name:  deref(row.StudentName),
			Email: deref(row.StudentEmail),
			Age:   helpers.YearsBetween(*row.BirthDate, now),
		}

		if entry.Youngest == nil || student.Age < entry.Youngest.Age {
			entry.Youngest = student
		}
		if entry.Oldest == nil || student.Age > entry.Oldest.Age {
			entry.Oldest = student
		}
		entry.TotalStudents++
		sums[row.CourseID] += student.Age
	}

	for i := range report {
		if n := report[i].TotalStudents; n > 0 {
			avg := float64(sums[report[i].CourseID]) / float64(n)
			report[i].AvgAge = math.Round(avg*10) / 10
		}
	}
	return report
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
