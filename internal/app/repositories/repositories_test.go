package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jubilut/academia/internal/app/migrations"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, migrates it and empties every table
func openTestDB(t *testing.T) *repositories.Repositories {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE access_tokens, enrollments, subjects, courses, professors, students, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return repositories.NewRepositories(pool)
}

func createStudent(t *testing.T, repos *repositories.Repositories, email string, birth *time.Time) *models.Student {
	t.Helper()
	st := &models.Student{Name: "Aluno " + email, Email: email, BirthDate: birth}
	usr := &models.User{Name: st.Name, Email: email, Password: "hash", Role: models.RoleStudent}
	require.NoError(t, repos.StudentRepository.CreateWithUser(context.Background(), st, usr))
	return st
}

func createCourse(t *testing.T, repos *repositories.Repositories, title string) *models.Course {
	t.Helper()
	c := &models.Course{
		Title:     title,
		StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repos.CourseRepository.Create(context.Background(), c))
	return c
}

func TestStudentLifecycle(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()

	st := createStudent(t, repos, "ana@example.com", nil)
	assert.NotZero(t, st.UserID)

	dup := &models.Student{Name: "Dup", Email: "ana@example.com"}
	err := repos.StudentRepository.CreateWithUser(ctx, dup, &models.User{Name: "Dup", Email: "ana@example.com", Password: "x", Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	students, total, err := repos.StudentRepository.List(ctx, models.StudentFilter{Email: "ANA@"}, models.Page{Limit: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, students, 1)

	st.Name = "Ana Maria"
	newHash := "new-hash"
	require.NoError(t, repos.StudentRepository.UpdateWithUser(ctx, st, &newHash))
	usr, err := repos.UserRepository.GetByID(ctx, st.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", usr.Name)
	assert.Equal(t, "new-hash", usr.Password)

	course := createCourse(t, repos, "Biologia")
	require.NoError(t, repos.EnrollmentRepository.Enroll(ctx, st.ID, course.ID))

	require.NoError(t, repos.StudentRepository.DeleteWithUser(ctx, st.ID))
	_, err = repos.UserRepository.GetByID(ctx, st.UserID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	enrolled, err := repos.EnrollmentRepository.IsEnrolled(ctx, st.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	assert.ErrorIs(t, repos.StudentRepository.DeleteWithUser(ctx, st.ID), apperrors.ErrStudentNotFound)
}

func TestEnrollmentConstraints(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	st := createStudent(t, repos, "ana@example.com", nil)
	course := createCourse(t, repos, "Biologia")

	require.NoError(t, repos.EnrollmentRepository.Enroll(ctx, st.ID, course.ID))
	assert.ErrorIs(t, repos.EnrollmentRepository.Enroll(ctx, st.ID, course.ID), apperrors.ErrAlreadyEnrolled)
	assert.ErrorIs(t, repos.EnrollmentRepository.Enroll(ctx, st.ID, 999), apperrors.ErrCourseNotFound)

	courses, err := repos.EnrollmentRepository.CoursesForStudent(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	require.NoError(t, repos.EnrollmentRepository.Unenroll(ctx, st.ID, course.ID))
	require.NoError(t, repos.EnrollmentRepository.Unenroll(ctx, st.ID, course.ID))
}

func TestSubjectForeignKeys(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	course := createCourse(t, repos, "Biologia")
	prof := &models.Professor{Name: "Paulo", Email: "paulo@prof.com"}
	require.NoError(t, repos.ProfessorRepository.Create(ctx, prof))

	err := repos.SubjectRepository.Create(ctx, &models.Subject{Title: "Citologia", CourseID: course.ID, ProfessorID: 999})
	assert.ErrorIs(t, err, apperrors.ErrProfessorNotFound)

	sub := &models.Subject{Title: "Citologia", CourseID: course.ID, ProfessorID: prof.ID}
	require.NoError(t, repos.SubjectRepository.Create(ctx, sub))
	got, err := repos.SubjectRepository.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biologia", got.Course.Title)
	assert.Equal(t, "Paulo", got.Professor.Name)

	require.NoError(t, repos.ProfessorRepository.Delete(ctx, prof.ID))
	_, err = repos.SubjectRepository.GetByID(ctx, sub.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestAccessTokens(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	st := createStudent(t, repos, "ana@example.com", nil)
	now := time.Now()

	token := &models.AccessToken{JTI: uuid.NewString(), UserID: st.UserID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repos.TokenRepository.Create(ctx, token))

	_, err := repos.TokenRepository.GetActive(ctx, token.JTI, now)
	require.NoError(t, err)
	_, err = repos.TokenRepository.GetActive(ctx, token.JTI, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	_, err = repos.TokenRepository.GetActive(ctx, uuid.NewString(), now)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	require.NoError(t, repos.TokenRepository.Revoke(ctx, token.JTI, now))
	_, err = repos.TokenRepository.GetActive(ctx, token.JTI, now)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	removed, err := repos.TokenRepository.DeleteExpired(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestUpdateWithUserRevokesTokensOnPasswordChange(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	st := createStudent(t, repos, "ana@example.com", nil)
	now := time.Now()

	token := &models.AccessToken{JTI: uuid.NewString(), UserID: st.UserID, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repos.TokenRepository.Create(ctx, token))

	st.Name = "Ana Maria"
	require.NoError(t, repos.StudentRepository.UpdateWithUser(ctx, st, nil))
	_, err := repos.TokenRepository.GetActive(ctx, token.JTI, now)
	require.NoError(t, err, "profile changes keep the session")

	newHash := "new-hash"
	require.NoError(t, repos.StudentRepository.UpdateWithUser(ctx, st, &newHash))
	_, err = repos.TokenRepository.GetActive(ctx, token.JTI, now)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestReportRows(t *testing.T) {
	repos := openTestDB(t)
	ctx := context.Background()
	bio := createCourse(t, repos, "Biologia")
	createCourse(t, repos, "Zoologia")
	birth := time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC)
	st := createStudent(t, repos, "ana@example.com", &birth)
	require.NoError(t, repos.EnrollmentRepository.Enroll(ctx, st.ID, bio.ID))

	rows, err := repos.ReportRepository.CourseStudentRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bio.ID, rows[0].CourseID)
	require.NotNil(t, rows[0].StudentID)
	assert.Equal(t, st.ID, *rows[0].StudentID)
	assert.Nil(t, rows[1].StudentID)
}
