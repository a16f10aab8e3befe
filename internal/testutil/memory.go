package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
)

// Store is an in-memory database behind the repository interfaces. Deletes
// cascade the way the SQL foreign keys do.
type Store struct {
	mu sync.Mutex

	nextID      int64
	users       map[int64]*models.User
	students    map[int64]*models.Student
	professors  map[int64]*models.Professor
	courses     map[int64]*models.Course
	subjects    map[int64]*models.Subject
	enrollments []models.Enrollment
	tokens      map[string]*models.AccessToken

	// Now stamps created_at and updated_at
	Now func() time.Time
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*models.User),
		students:   make(map[int64]*models.Student),
		professors: make(map[int64]*models.Professor),
		courses:    make(map[int64]*models.Course),
		subjects:   make(map[int64]*models.Subject),
		tokens:     make(map[string]*models.AccessToken),
		Now:        time.Now,
	}
}

// Repositories exposes the store through every repository interface
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:       userRepo{s},
		StudentRepository:    studentRepo{s},
		ProfessorRepository:  professorRepo{s},
		CourseRepository:     courseRepo{s},
		SubjectRepository:    subjectRepo{s},
		EnrollmentRepository: enrollmentRepo{s},
		TokenRepository:      tokenRepo{s},
		ReportRepository:     reportRepo{s},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) stamp(ts *models.Timestamps, created bool) {
	now := s.Now()
	if created {
		ts.CreatedAt = now
	}
	ts.UpdatedAt = now
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Token returns a copy of the stored token, nil when unknown
func (s *Store) Token(jti string) *models.AccessToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[jti]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

// Counts reports the number of rows per table
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"users":       len(s.users),
		"students":    len(s.students),
		"professors":  len(s.professors),
		"courses":     len(s.courses),
		"subjects":    len(s.subjects),
		"enrollments": len(s.enrollments),
		"tokens":      len(s.tokens),
	}
}

// descending returns the keys of m newest first
func descending[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids
}

func window[T any](items []T, page models.Page) []T {
	if page.Offset >= uint64(len(items)) {
		return []T{}
	}
	end := uint64(len(items))
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if sameEmail(u.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.s.id()
	r.s.stamp(&user.Timestamps, true)
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if sameEmail(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r userRepo) EmailExists(_ context.Context, email string, exceptID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID != exceptID && sameEmail(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type studentRepo struct{ s *Store }

func (r studentRepo) List(_ context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []*models.Student
	for _, id := range descending(r.s.students) {
		st := r.s.students[id]
		if filter.Name != "" && !strings.Contains(strings.ToLower(st.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(st.Email), strings.ToLower(filter.Email)) {
			continue
		}
		cp := *st
		matched = append(matched, &cp)
	}
	return window(matched, page), int64(len(matched)), nil
}

func (r studentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

func (r studentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.students {
		if st.UserID == userID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r studentRepo) EmailExists(_ context.Context, email string, exceptID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.students {
		if st.ID != exceptID && sameEmail(st.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r studentRepo) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	if err := (userRepo{r.s}).Create(ctx, user); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.students {
		if sameEmail(st.Email, student.Email) {
			delete(r.s.users, user.ID)
			return apperrors.ErrEmailAlreadyExists
		}
	}
	student.ID = r.s.id()
	student.UserID = user.ID
	r.s.stamp(&student.Timestamps, true)
	cp := *student
	r.s.students[student.ID] = &cp
	return nil
}

func (r studentRepo) UpdateWithUser(_ context.Context, student *models.Student, passwordHash *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	for _, st := range r.s.students {
		if st.ID != student.ID && sameEmail(st.Email, student.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	for _, u := range r.s.users {
		if u.ID != current.UserID && sameEmail(u.Email, student.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	current.Name = student.Name
	current.Email = student.Email
	current.BirthDate = student.BirthDate
	r.s.stamp(&current.Timestamps, false)
	*student = *current

	if u, ok := r.s.users[current.UserID]; ok {
		u.Name = student.Name
		u.Email = student.Email
		if passwordHash != nil {
			u.Password = *passwordHash
		}
		r.s.stamp(&u.Timestamps, false)
	}

	if passwordHash != nil {
		at := r.s.Now()
		for _, t := range r.s.tokens {
			if t.UserID == current.UserID && t.RevokedAt == nil {
				t.RevokedAt = &at
			}
		}
	}
	return nil
}

func (r studentRepo) DeleteWithUser(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.s.students, id)
	r.s.dropEnrollments(func(e models.Enrollment) bool { return e.StudentID == id })
	delete(r.s.users, st.UserID)
	for jti, t := range r.s.tokens {
		if t.UserID == st.UserID {
			delete(r.s.tokens, jti)
		}
	}
	return nil
}

func (s *Store) dropEnrollments(match func(models.Enrollment) bool) {
	kept := s.enrollments[:0]
	for _, e := range s.enrollments {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	s.enrollments = kept
}

type professorRepo struct{ s *Store }

func (r professorRepo) List(_ context.Context) ([]*models.Professor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Professor, 0, len(r.s.professors))
	for _, id := range descending(r.s.professors) {
		cp := *r.s.professors[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r professorRepo) GetByID(_ context.Context, id int64) (*models.Professor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.professors[id]
	if !ok {
		return nil, apperrors.ErrProfessorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r professorRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.professors[id]
	return ok, nil
}

func (r professorRepo) EmailExists(_ context.Context, email string, exceptID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.professors {
		if p.ID != exceptID && sameEmail(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r professorRepo) Create(_ context.Context, professor *models.Professor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.professors {
		if sameEmail(p.Email, professor.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	professor.ID = r.s.id()
	r.s.stamp(&professor.Timestamps, true)
	cp := *professor
	r.s.professors[professor.ID] = &cp
	return nil
}

func (r professorRepo) Update(_ context.Context, professor *models.Professor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.professors[professor.ID]
	if !ok {
		return apperrors.ErrProfessorNotFound
	}
	for _, p := range r.s.professors {
		if p.ID != professor.ID && sameEmail(p.Email, professor.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	current.Name = professor.Name
	current.Email = professor.Email
	r.s.stamp(&current.Timestamps, false)
	*professor = *current
	return nil
}

func (r professorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.professors[id]; !ok {
		return apperrors.ErrProfessorNotFound
	}
	delete(r.s.professors, id)
	for sid, sub := range r.s.subjects {
		if sub.ProfessorID == id {
			delete(r.s.subjects, sid)
		}
	}
	return nil
}

type courseRepo struct{ s *Store }

func (r courseRepo) List(_ context.Context, page models.Page) ([]*models.Course, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*models.Course, 0, len(r.s.courses))
	for _, id := range descending(r.s.courses) {
		cp := *r.s.courses[id]
		all = append(all, &cp)
	}
	return window(all, page), int64(len(all)), nil
}

func (r courseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r courseRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.courses[id]
	return ok, nil
}

func (r courseRepo) Create(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	course.ID = r.s.id()
	r.s.stamp(&course.Timestamps, true)
	cp := *course
	r.s.courses[course.ID] = &cp
	return nil
}

func (r courseRepo) Update(_ context.Context, course *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	current.Title = course.Title
	current.Description = course.Description
	current.StartDate = course.StartDate
	current.EndDate = course.EndDate
	r.s.stamp(&current.Timestamps, false)
	*course = *current
	return nil
}

func (r courseRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.s.courses, id)
	r.s.dropEnrollments(func(e models.Enrollment) bool { return e.CourseID == id })
	for sid, sub := range r.s.subjects {
		if sub.CourseID == id {
			delete(r.s.subjects, sid)
		}
	}
	return nil
}

type subjectRepo struct{ s *Store }

// withRelations copies a subject and attaches its course and professor
func (s *Store) withRelations(sub *models.Subject) *models.Subject {
	cp := *sub
	if c, ok := s.courses[sub.CourseID]; ok {
		cp.Course = &models.Course{ID: c.ID, Title: c.Title}
	}
	if p, ok := s.professors[sub.ProfessorID]; ok {
		cp.Professor = &models.Professor{ID: p.ID, Name: p.Name}
	}
	return &cp
}

func (s *Store) checkSubjectParents(sub *models.Subject) error {
	if _, ok := s.courses[sub.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if _, ok := s.professors[sub.ProfessorID]; !ok {
		return apperrors.ErrProfessorNotFound
	}
	return nil
}

func (r subjectRepo) List(_ context.Context) ([]*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Subject, 0, len(r.s.subjects))
	for _, id := range descending(r.s.subjects) {
		out = append(out, r.s.withRelations(r.s.subjects[id]))
	}
	return out, nil
}

func (r subjectRepo) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return r.s.withRelations(sub), nil
}

func (r subjectRepo) Create(_ context.Context, subject *models.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkSubjectParents(subject); err != nil {
		return err
	}
	subject.ID = r.s.id()
	r.s.stamp(&subject.Timestamps, true)
	cp := *subject
	cp.Course, cp.Professor = nil, nil
	r.s.subjects[subject.ID] = &cp
	return nil
}

func (r subjectRepo) Update(_ context.Context, subject *models.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.subjects[subject.ID]
	if !ok {
		return apperrors.ErrSubjectNotFound
	}
	if err := r.s.checkSubjectParents(subject); err != nil {
		return err
	}
	current.Title = subject.Title
	current.Description = subject.Description
	current.CourseID = subject.CourseID
	current.ProfessorID = subject.ProfessorID
	r.s.stamp(&current.Timestamps, false)
	return nil
}

func (r subjectRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(r.s.subjects, id)
	return nil
}

type enrollmentRepo struct{ s *Store }

func (r enrollmentRepo) IsEnrolled(_ context.Context, studentID, courseID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r enrollmentRepo) Enroll(_ context.Context, studentID, courseID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.students[studentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if _, ok := r.s.courses[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	e := models.Enrollment{StudentID: studentID, CourseID: courseID}
	r.s.stamp(&e.Timestamps, true)
	r.s.enrollments = append(r.s.enrollments, e)
	return nil
}

func (r enrollmentRepo) Unenroll(_ context.Context, studentID, courseID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.dropEnrollments(func(e models.Enrollment) bool {
		return e.StudentID == studentID && e.CourseID == courseID
	})
	return nil
}

func (r enrollmentRepo) CoursesForStudent(_ context.Context, studentID int64) ([]*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, e := range r.s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if c, ok := r.s.courses[e.CourseID]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type tokenRepo struct{ s *Store }

func (r tokenRepo) Create(_ context.Context, token *models.AccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.CreatedAt = r.s.Now()
	cp := *token
	r.s.tokens[token.JTI] = &cp
	return nil
}

func (r tokenRepo) GetActive(_ context.Context, jti string, now time.Time) (*models.AccessToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[jti]
	switch {
	case !ok:
		return nil, apperrors.ErrTokenNotFound
	case t.RevokedAt != nil:
		return nil, apperrors.ErrTokenRevoked
	case !now.Before(t.ExpiresAt):
		return nil, apperrors.ErrTokenExpired
	}
	cp := *t
	return &cp, nil
}

func (r tokenRepo) Revoke(_ context.Context, jti string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[jti]; ok && t.RevokedAt == nil {
		t.RevokedAt = &at
	}
	return nil
}

func (r tokenRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var removed int64
	for jti, t := range r.s.tokens {
		if t.ExpiresAt.Before(before) || (t.RevokedAt != nil && t.RevokedAt.Before(before)) {
			delete(r.s.tokens, jti)
			removed++
		}
	}
	return removed, nil
}

type reportRepo struct{ s *Store }

func (r reportRepo) CourseStudentRows(_ context.Context) ([]models.CourseStudentRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := descending(r.s.courses)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []models.CourseStudentRow
	for _, cid := range ids {
		c := r.s.courses[cid]
		found := false
		for _, e := range r.s.enrollments {
			if e.CourseID != cid {
				continue
			}
			st, ok := r.s.students[e.StudentID]
			if !ok {
				continue
			}
			found = true
			id, name, email := st.ID, st.Name, st.Email
			rows = append(rows, models.CourseStudentRow{
				CourseID:     cid,
				CourseTitle:  c.Title,
				StudentID:    &id,
				StudentName:  &name,
				StudentEmail: &email,
				BirthDate:    st.BirthDate,
			})
		}
		if !found {
			rows = append(rows, models.CourseStudentRow{CourseID: cid, CourseTitle: c.Title})
		}
	}
	return rows, nil
}
