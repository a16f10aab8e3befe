package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/auth"
)

// TestPassword is the password of every fixture user
const TestPassword = "password"

// JWTService signs tokens the way the api does, with a fixed test secret
func JWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "academia.test",
	})
}

// Date builds a UTC date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func hash(t *testing.T) string {
	t.Helper()
	h, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	return h
}

// CreateAdmin stores an admin user
func CreateAdmin(t *testing.T, s *Store, name, email string) *models.User {
	t.Helper()
	usr := &models.User{Name: name, Email: email, Password: hash(t), Role: models.RoleAdmin}
	if err := (userRepo{s}).Create(context.Background(), usr); err != nil {
		t.Fatalf("CreateAdmin() failed: %v", err)
	}
	return usr
}

// CreateStudent stores a student and its login user
func CreateStudent(t *testing.T, s *Store, name, email string, birth *time.Time) *models.Student {
	t.Helper()
	st := &models.Student{Name: name, Email: email, BirthDate: birth}
	usr := &models.User{Name: name, Email: email, Password: hash(t), Role: models.RoleStudent}
	if err := (studentRepo{s}).CreateWithUser(context.Background(), st, usr); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

// CreateCourse stores a course running from start for one month
func CreateCourse(t *testing.T, s *Store, title string, start time.Time) *models.Course {
	t.Helper()
	c := &models.Course{Title: title, StartDate: start, EndDate: start.AddDate(0, 1, 0)}
	if err := (courseRepo{s}).Create(context.Background(), c); err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

// CreateProfessor stores a professor
func CreateProfessor(t *testing.T, s *Store, name, email string) *models.Professor {
	t.Helper()
	p := &models.Professor{Name: name, Email: email}
	if err := (professorRepo{s}).Create(context.Background(), p); err != nil {
		t.Fatalf("CreateProfessor() failed: %v", err)
	}
	return p
}

// Enroll stores an enrollment
func Enroll(t *testing.T, s *Store, studentID, courseID int64) {
	t.Helper()
	if err := (enrollmentRepo{s}).Enroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
}
