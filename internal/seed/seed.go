package seed

import (
	"context"
	"errors"
	"time"

	appModels "github.com/jubilut/academia/internal/app/models"
	appRepos "github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// DefaultPassword is the password of the seeded accounts
const DefaultPassword = "password"

const (
	adminEmail   = "admin@jubilut.com.br"
	studentEmail = "student@jubilut.com.br"
)

type courseSeed struct {
	title, description, start, end string
}

var defaultCourses = []courseSeed{
	{"Biologia Geral", "Fundamentos de biologia celular e molecular.", "2024-02-01", "2024-06-30"},
	{"Ecologia e Meio Ambiente", "Estudo dos ecossistemas e sustentabilidade.", "2024-03-01", "2024-07-31"},
	{"Genetica Aplicada", "Principios de genetica e engenharia genetica.", "2024-04-01", "2024-08-31"},
	{"Anatomia Humana", "Estudo detalhado da anatomia do corpo humano.", "2024-05-01", "2024-09-30"},
	{"Zoologia", "Classificacao e estudo dos animais.", "2024-06-01", "2024-10-31"},
}

var defaultProfessors = []appModels.Professor{
	{Name: "Paulo Jubilut", Email: "jubilut@prof.com"},
	{Name: "Maria Silva", Email: "maria.silva@prof.com"},
	{Name: "Carlos Santos", Email: "carlos.santos@prof.com"},
	{Name: "Ana Oliveira", Email: "ana.oliveira@prof.com"},
	{Name: "Roberto Lima", Email: "roberto.lima@prof.com"},
}

// defaultSubjects pair up with defaultCourses and defaultProfessors by index
var defaultSubjects = []struct{ title, description string }{
	{"Citologia", "Estudo das celulas."},
	{"Biomas Brasileiros", "Estudo dos biomas do Brasil."},
	{"Hereditariedade", "Leis de Mendel e heranca genetica."},
	{"Sistema Nervoso", "Anatomia do sistema nervoso central e periferico."},
	{"Vertebrados", "Classificacao e estudo dos vertebrados."},
}

// CreateDefaultData creates the admin, the placeholder student and the starter
// catalog. Each part is skipped when it already exists, so it is safe to rerun.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return err
	}

	if err := createAdmin(ctx, repos, hash, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	}
	if err := createPlaceholderStudent(ctx, repos, hash, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating placeholder student")
		finalErr = errors.Join(finalErr, err)
	}
	if err := createCatalog(ctx, repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating course catalog")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed")
	}
	return finalErr
}

func createAdmin(ctx context.Context, repos *appRepos.Repositories, hash string, lgr zerolog.Logger) error {
	_, err := repos.UserRepository.GetByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	admin := &appModels.User{
		Name:     "Administrador",
		Email:    adminEmail,
		Password: hash,
		Role:     appModels.RoleAdmin,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		return err
	}
	lgr.Info().Str("email", adminEmail).Msg("Admin user created")
	return nil
}

func createPlaceholderStudent(ctx context.Context, repos *appRepos.Repositories, hash string, lgr zerolog.Logger) error {
	exists, err := repos.StudentRepository.EmailExists(ctx, studentEmail, 0)
	if err != nil || exists {
		return err
	}
	userExists, err := repos.UserRepository.EmailExists(ctx, studentEmail, 0)
	if err != nil {
		return err
	}
	if userExists {
		lgr.Warn().Str("email", studentEmail).Msg("Placeholder user exists without a student record, skipping")
		return nil
	}

	birth := time.Date(2000, time.May, 15, 0, 0, 0, 0, time.UTC)
	student := &appModels.Student{Name: "Aluno Placeholder", Email: studentEmail, BirthDate: &birth}
	user := &appModels.User{
		Name:     student.Name,
		Email:    studentEmail,
		Password: hash,
		Role:     appModels.RoleStudent,
	}
	if err := repos.StudentRepository.CreateWithUser(ctx, student, user); err != nil {
		return err
	}
	lgr.Info().Str("email", studentEmail).Msg("Placeholder student created")
	return nil
}

// createCatalog seeds courses, professors and subjects into an empty catalog
func createCatalog(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	_, total, err := repos.CourseRepository.List(ctx, appModels.Page{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	courseIDs := make([]int64, 0, len(defaultCourses))
	for _, cs := range defaultCourses {
		start, _ := time.Parse("2006-01-02", cs.start)
		end, _ := time.Parse("2006-01-02", cs.end)
		description := cs.description
		course := &appModels.Course{Title: cs.title, Description: &description, StartDate: start, EndDate: end}
		if err := repos.CourseRepository.Create(ctx, course); err != nil {
			return err
		}
		courseIDs = append(courseIDs, course.ID)
	}

	professorIDs := make([]int64, 0, len(defaultProfessors))
	for _, p := range defaultProfessors {
		professor := p
		err := repos.ProfessorRepository.Create(ctx, &professor)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}
		professorIDs = append(professorIDs, professor.ID)
	}

	for i, ss := range defaultSubjects {
		if i >= len(courseIDs) || i >= len(professorIDs) {
			break
		}
		description := ss.description
		subject := &appModels.Subject{
			Title:       ss.title,
			Description: &description,
			CourseID:    courseIDs[i],
			ProfessorID: professorIDs[i],
		}
		if err := repos.SubjectRepository.Create(ctx, subject); err != nil {
			return err
		}
	}

	lgr.Info().
		Int("courses", len(courseIDs)).
		Int("professors", len(professorIDs)).
		Msg("Course catalog created")
	return nil
}
