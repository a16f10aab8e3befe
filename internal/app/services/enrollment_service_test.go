package services

import (
	"context"
	"testing"

	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollStudent(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	c := testutil.CreateCourse(t, store, "Biologia", testutil.Date(2024, 2, 1))

	course, err := svcs.Enrollment.EnrollStudent(ctx, st.ID, &dto.EnrollRequest{CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, course.ID)

	_, err = svcs.Enrollment.EnrollStudent(ctx, st.ID, &dto.EnrollRequest{CourseID: c.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.Equal(t, 1, store.Counts()["enrollments"])
}

func TestEnrollStudentFailures(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	c := testutil.CreateCourse(t, store, "Biologia", testutil.Date(2024, 2, 1))

	_, err := svcs.Enrollment.EnrollStudent(ctx, 999, &dto.EnrollRequest{CourseID: c.ID})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svcs.Enrollment.EnrollStudent(ctx, st.ID, &dto.EnrollRequest{})
	assert.Contains(t, fieldErrors(t, err), "course_id")

	_, err = svcs.Enrollment.EnrollStudent(ctx, st.ID, &dto.EnrollRequest{CourseID: 999})
	assert.Equal(t, []string{"The selected course id is invalid."}, fieldErrors(t, err)["course_id"])
}

func TestStudentCoursesInEnrollmentOrder(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	first := testutil.CreateCourse(t, store, "Zoologia", testutil.Date(2024, 6, 1))
	second := testutil.CreateCourse(t, store, "Anatomia", testutil.Date(2024, 5, 1))
	testutil.Enroll(t, store, st.ID, second.ID)
	testutil.Enroll(t, store, st.ID, first.ID)

	courses, err := svcs.Enrollment.GetStudentCourses(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, second.ID, courses[0].ID)
	assert.Equal(t, first.ID, courses[1].ID)

	mine, err := svcs.Enrollment.GetMyCourses(ctx, st.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svcs.Enrollment.GetStudentCourses(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUnenrollIsIdempotent(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	c := testutil.CreateCourse(t, store, "Biologia", testutil.Date(2024, 2, 1))
	testutil.Enroll(t, store, st.ID, c.ID)

	require.NoError(t, svcs.Enrollment.UnenrollStudent(ctx, st.ID, c.ID))
	require.NoError(t, svcs.Enrollment.UnenrollStudent(ctx, st.ID, c.ID))
	assert.Equal(t, 0, store.Counts()["enrollments"])

	assert.ErrorIs(t, svcs.Enrollment.UnenrollStudent(ctx, 999, c.ID), apperrors.ErrStudentNotFound)
}

func TestMyCoursesWithoutStudentRecord(t *testing.T) {
	svcs, store := newTestServices(t)
	admin := testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	_, err := svcs.Enrollment.GetMyCourses(context.Background(), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentProfileNotFound)
	assert.EqualError(t, err, "Student profile not found.")
}

func TestProfile(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	testutil.CreateStudent(t, store, "Bia", "bia@example.com", nil)

	got, err := svcs.Profile.GetProfile(ctx, st.UserID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)

	_, err = svcs.Profile.UpdateProfile(ctx, st.UserID, &dto.UpdateProfileRequest{Name: "Ana", Email: "bia@example.com"})
	assert.Contains(t, fieldErrors(t, err), "email")

	updated, err := svcs.Profile.UpdateProfile(ctx, st.UserID, &dto.UpdateProfileRequest{
		Name: "Ana Clara", Email: "ana.clara@example.com", BirthDate: strPtr("1999-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ana.clara@example.com", updated.Email)

	resp, err := svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "ana.clara@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", resp.User.Name)

	_, err = svcs.Profile.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentProfileNotFound)
}
