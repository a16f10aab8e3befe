package repositories

import (
	"context"
	"time"

	"github.com/jubilut/academia/internal/app/models"
)

// IUserRepository defines the user account queries
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// EmailExists ignores the user with exceptID (0 ignores nobody)
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
}

// IStudentRepository defines student persistence. The *WithUser methods keep
// the student and its login user consistent inside one transaction.
type IStudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
	CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error
	// UpdateWithUser writes name, email and birth date and mirrors name and
	// email to the linked user. A non-nil passwordHash replaces the password
	// and revokes the user's live access tokens.
	UpdateWithUser(ctx context.Context, student *models.Student, passwordHash *string) error
	DeleteWithUser(ctx context.Context, id int64) error
}

// IProfessorRepository defines professor persistence
type IProfessorRepository interface {
	List(ctx context.Context) ([]*models.Professor, error)
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	Exists(ctx context.Context, id int64) (bool, error)
	EmailExists(ctx context.Context, email string, exceptID int64) (bool, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id int64) error
}

// ICourseRepository defines course persistence
type ICourseRepository interface {
	List(ctx context.Context, page models.Page) ([]*models.Course, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// ISubjectRepository defines subject persistence. Reads load Course and Professor.
type ISubjectRepository interface {
	List(ctx context.Context) ([]*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// IEnrollmentRepository defines the student/course join table
type IEnrollmentRepository interface {
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
	CoursesForStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
}

// ITokenRepository tracks issued access tokens by jti
type ITokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	// GetActive fails with ErrTokenNotFound, ErrTokenRevoked or ErrTokenExpired
	GetActive(ctx context.Context, jti string, now time.Time) (*models.AccessToken, error)
	Revoke(ctx context.Context, jti string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// IReportRepository provides the raw rows of the intelligence report
type IReportRepository interface {
	CourseStudentRows(ctx context.Context) ([]models.CourseStudentRow, error)
}

var (
	_ IUserRepository       = (*UserRepository)(nil)
	_ IStudentRepository    = (*StudentRepository)(nil)
	_ IProfessorRepository  = (*ProfessorRepository)(nil)
	_ ICourseRepository     = (*CourseRepository)(nil)
	_ ISubjectRepository    = (*SubjectRepository)(nil)
	_ IEnrollmentRepository = (*EnrollmentRepository)(nil)
	_ ITokenRepository      = (*TokenRepository)(nil)
	_ IReportRepository     = (*ReportRepository)(nil)
)
