package services

import (
	"context"
	"testing"

	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/jubilut/academia/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*Services, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	svcs := NewServices(store.Repositories(), testutil.JWTService(), validation.New(), zerolog.Nop())
	return svcs, store
}

func strPtr(s string) *string { return &s }

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	return verr.Fields
}

func TestCreateStudentCreatesLinkedUser(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	student, err := svcs.Student.CreateStudent(ctx, &dto.CreateStudentRequest{
		Name:      "  Maria Souza ",
		Email:     "Maria@Example.com",
		BirthDate: strPtr("2001-08-21"),
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", student.Name)
	assert.Equal(t, "maria@example.com", student.Email)
	require.NotNil(t, student.BirthDate)
	assert.Equal(t, "2001-08-21", student.BirthDate.Format(validation.DateLayout))

	user, err := store.Repositories().UserRepository.GetByID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, "student", string(user.Role))
	assert.NotEqual(t, "secret1", user.Password)

	resp, err := svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "maria@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.StudentID)
	assert.Equal(t, student.ID, *resp.User.StudentID)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	testutil.CreateStudent(t, store, "Existing", "taken@example.com", nil)
	testutil.CreateAdmin(t, store, "Admin", "admin@example.com")

	tests := []struct {
		name  string
		email string
	}{
		{"taken by a student", "taken@example.com"},
		{"taken by a student, other case", "TAKEN@example.com"},
		{"taken by an admin user", "admin@example.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svcs.Student.CreateStudent(ctx, &dto.CreateStudentRequest{
				Name: "New", Email: tc.email, Password: "secret1",
			})
			fields := fieldErrors(t, err)
			assert.Equal(t, []string{"The email has already been taken."}, fields["email"])
		})
	}
	assert.Equal(t, 1, store.Counts()["students"])
}

func TestCreateStudentRules(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Student.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		Email:     "not-an-email",
		BirthDate: strPtr("21/08/2001"),
		Password:  "123",
	})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "birth_date")
	assert.Contains(t, fields, "password")
}

func TestUpdateStudentKeepsOwnEmailAndClearsBirthDate(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	birth := testutil.Date(2000, 1, 1)
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", &birth)

	err := svcs.Student.UpdateStudent(ctx, st.ID, &dto.UpdateStudentRequest{
		Name:  "Ana Maria",
		Email: "ana@example.com",
	})
	require.NoError(t, err)

	got, err := svcs.Student.GetStudentByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Nil(t, got.BirthDate)

	user, err := store.Repositories().UserRepository.GetByID(ctx, st.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)
}

func TestUpdateStudentChangesPassword(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	session, err := svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: testutil.TestPassword})
	require.NoError(t, err)

	require.NoError(t, svcs.Student.UpdateStudent(ctx, st.ID, &dto.UpdateStudentRequest{
		Name: "Ana Clara", Email: "ana@example.com",
	}))
	_, err = svcs.Auth.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svcs.Student.UpdateStudent(ctx, st.ID, &dto.UpdateStudentRequest{
		Name: "Ana", Email: "ana@example.com", Password: strPtr("novasenha"),
	}))

	_, err = svcs.Auth.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: testutil.TestPassword})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svcs.Auth.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "novasenha"})
	assert.NoError(t, err)
}

func TestUpdateStudentEmailTakenByOther(t *testing.T) {
	svcs, store := newTestServices(t)
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	testutil.CreateStudent(t, store, "Bia", "bia@example.com", nil)

	err := svcs.Student.UpdateStudent(context.Background(), st.ID, &dto.UpdateStudentRequest{
		Name: "Ana", Email: "bia@example.com",
	})
	assert.Contains(t, fieldErrors(t, err), "email")
}

func TestUpdateMissingStudent(t *testing.T) {
	svcs, _ := newTestServices(t)
	err := svcs.Student.UpdateStudent(context.Background(), 99, &dto.UpdateStudentRequest{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentCascades(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	st := testutil.CreateStudent(t, store, "Ana", "ana@example.com", nil)
	course := testutil.CreateCourse(t, store, "Biologia", testutil.Date(2024, 2, 1))
	testutil.Enroll(t, store, st.ID, course.ID)

	require.NoError(t, svcs.Student.DeleteStudent(ctx, st.ID))

	counts := store.Counts()
	assert.Equal(t, 0, counts["students"])
	assert.Equal(t, 0, counts["users"])
	assert.Equal(t, 0, counts["enrollments"])
	assert.Equal(t, 1, counts["courses"])

	assert.ErrorIs(t, svcs.Student.DeleteStudent(ctx, st.ID), apperrors.ErrStudentNotFound)
}

func TestListStudentsFilters(t *testing.T) {
	svcs, store := newTestServices(t)
	testutil.CreateStudent(t, store, "Ana Souza", "ana@example.com", nil)
	testutil.CreateStudent(t, store, "Bruno Lima", "bruno@school.com", nil)
	testutil.CreateStudent(t, store, "Carla Souza", "carla@school.com", nil)

	students, total, err := svcs.Student.ListStudents(context.Background(), modelsFilter("souza", ""), pageOf(0, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, students, 2)
	assert.Equal(t, "Carla Souza", students[0].Name)

	_, total, err = svcs.Student.ListStudents(context.Background(), modelsFilter("", "SCHOOL"), pageOf(0, 15))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
