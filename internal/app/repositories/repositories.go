package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       IUserRepository
	StudentRepository    IStudentRepository
	ProfessorRepository  IProfessorRepository
	CourseRepository     ICourseRepository
	SubjectRepository    ISubjectRepository
	EnrollmentRepository IEnrollmentRepository
	TokenRepository      ITokenRepository
	ReportRepository     IReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		ProfessorRepository:  NewProfessorRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		TokenRepository:      NewTokenRepository(db),
		ReportRepository:     NewReportRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value anywhere, with wildcards in value escaped
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
