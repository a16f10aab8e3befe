package services

import (
	"context"
	"testing"
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(courseID int64, title string, studentID int64, name string, birth *time.Time) models.CourseStudentRow {
	email := name + "@example.com"
	return models.CourseStudentRow{
		CourseID:     courseID,
		CourseTitle:  title,
		StudentID:    &studentID,
		StudentName:  &name,
		StudentEmail: &email,
		BirthDate:    birth,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := testutil.Date(year, month, day)
	return &d
}

func TestBuildIntelligenceReport(t *testing.T) {
	now := testutil.Date(2024, 6, 15)
	rows := []models.CourseStudentRow{
		row(1, "Biologia", 10, "ana", datePtr(2000, 6, 15)),   // 24
		row(1, "Biologia", 11, "bia", datePtr(2004, 6, 16)),   // 19
		row(1, "Biologia", 12, "caio", datePtr(2002, 1, 1)),   // 22
		row(1, "Biologia", 13, "duda", nil),                   // no birth date
		row(1, "Biologia", 14, "enzo", datePtr(2004, 12, 31)), // 19, tie
		{CourseID: 2, CourseTitle: "Zoologia"},
	}

	report := BuildIntelligenceReport(rows, now)
	require.Len(t, report, 2)

	bio := report[0]
	assert.Equal(t, int64(1), bio.CourseID)
	assert.Equal(t, 4, bio.TotalStudents)
	assert.Equal(t, 21.0, bio.AvgAge)
	require.NotNil(t, bio.Youngest)
	require.NotNil(t, bio.Oldest)
	assert.Equal(t, int64(11), bio.Youngest.ID)
	assert.Equal(t, 19, bio.Youngest.Age)
	assert.Equal(t, int64(10), bio.Oldest.ID)
	assert.Equal(t, "ana@example.com", bio.Oldest.Email)

	zoo := report[1]
	assert.Equal(t, "Zoologia", zoo.CourseTitle)
	assert.Equal(t, 0, zoo.TotalStudents)
	assert.Zero(t, zoo.AvgAge)
	assert.Nil(t, zoo.Youngest)
	assert.Nil(t, zoo.Oldest)
}

func TestBuildIntelligenceReportRoundsToOneDecimal(t *testing.T) {
	now := testutil.Date(2024, 1, 1)
	rows := []models.CourseStudentRow{
		row(1, "Genetica", 1, "a", datePtr(2000, 1, 1)), // 24
		row(1, "Genetica", 2, "b", datePtr(2000, 1, 1)), // 24
		row(1, "Genetica", 3, "c", datePtr(2001, 1, 1)), // 23
	}

	report := BuildIntelligenceReport(rows, now)
	require.Len(t, report, 1)
	assert.Equal(t, 23.7, report[0].AvgAge)
	assert.Equal(t, int64(1), report[0].Oldest.ID)
}

func TestBuildIntelligenceReportEmpty(t *testing.T) {
	report := BuildIntelligenceReport(nil, time.Now())
	assert.NotNil(t, report)
	assert.Empty(t, report)
}

func TestIntelligenceReportFromStore(t *testing.T) {
	svcs, store := newTestServices(t)
	first := testutil.CreateCourse(t, store, "Biologia", testutil.Date(2024, 2, 1))
	second := testutil.CreateCourse(t, store, "Zoologia", testutil.Date(2024, 6, 1))
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", datePtr(2000, 5, 15))
	testutil.Enroll(t, store, st.ID, second.ID)

	report, err := svcs.Report.IntelligenceReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, first.ID, report[0].CourseID)
	assert.Equal(t, 0, report[0].TotalStudents)
	assert.Equal(t, 1, report[1].TotalStudents)
	assert.Equal(t, st.ID, report[1].Youngest.ID)
}
