package services

import (
	appauth "github.com/jubilut/academia/internal/app/auth"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/auth"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// Services holds all the service instances
type Services struct {
	Auth       *AuthService
	Student    StudentService
	Professor  ProfessorService
	Course     CourseService
	Subject    SubjectService
	Enrollment EnrollmentService
	Profile    ProfileService
	Report     ReportService
}

// NewServices wires every service to its repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, validator *validation.Validator, logger zerolog.Logger) *Services {
	authz := appauth.NewAuthorizationService(repos.StudentRepository)

	return &Services{
		Auth:       NewAuthService(repos.UserRepository, repos.TokenRepository, authz, jwtService, validator, logger),
		Student:    NewStudentService(repos.StudentRepository, repos.UserRepository, validator, logger),
		Professor:  NewProfessorService(repos.ProfessorRepository, validator, logger),
		Course:     NewCourseService(repos.CourseRepository, validator, logger),
		Subject:    NewSubjectService(repos.SubjectRepository, repos.CourseRepository, repos.ProfessorRepository, validator, logger),
		Enrollment: NewEnrollmentService(repos.EnrollmentRepository, repos.StudentRepository, repos.CourseRepository, authz, validator, logger),
		Profile:    NewProfileService(repos.StudentRepository, repos.UserRepository, authz, validator, logger),
		Report:     NewReportService(repos.ReportRepository, logger),
	}
}
