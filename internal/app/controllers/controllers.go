package controllers

import (
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/pkg/helpers"
)

// Controllers holds every HTTP controller
type Controllers struct {
	Auth       *AuthController
	Student    *StudentController
	Professor  *ProfessorController
	Course     *CourseController
	Subject    *SubjectController
	Enrollment *EnrollmentController
	Profile    *ProfileController
	Report     *ReportController
}

// NewControllers builds the controllers over svcs
func NewControllers(svcs *services.Services, paginator helpers.Paginator) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svcs.Auth),
		Student:    NewStudentController(svcs.Student, paginator),
		Professor:  NewProfessorController(svcs.Professor),
		Course:     NewCourseController(svcs.Course, paginator),
		Subject:    NewSubjectController(svcs.Subject),
		Enrollment: NewEnrollmentController(svcs.Enrollment),
		Profile:    NewProfileController(svcs.Profile),
		Report:     NewReportController(svcs.Report),
	}
}
