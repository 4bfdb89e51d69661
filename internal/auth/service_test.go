package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ams/internal/auth"
	"ams/internal/database"
	"ams/internal/entity"
	"ams/internal/hashing"
	"ams/internal/repository"
	"ams/internal/session"
)

type fakeConn struct {
	releases *int
}

func (c *fakeConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (c *fakeConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (c *fakeConn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (c *fakeConn) Close() error {
	*c.releases++
	return nil
}

type fakePool struct {
	acquisitions int
	releases     int
}

func (p *fakePool) Acquire(ctx context.Context) (database.ReleasableConn, error) {
	p.acquisitions++
	return &fakeConn{releases: &p.releases}, nil
}

type fakeStudentStore struct {
	students map[string]*entity.Student
	findErr  error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[string]*entity.Student)}
}

func (f *fakeStudentStore) Find(ctx context.Context, conn database.Conn, id string) (*entity.Student, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) Exists(ctx context.Context, conn database.Conn, id, email string) (bool, error) {
	if _, ok := f.students[id]; ok {
		return true, nil
	}
	for _, s := range f.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, conn database.Conn, s *entity.Student) error {
	f.students[s.StudentID] = s
	return nil
}

type fakeTeacherStore struct {
	teachers map[string]*entity.Teacher
}

func newFakeTeacherStore() *fakeTeacherStore {
	return &fakeTeacherStore{teachers: make(map[string]*entity.Teacher)}
}

func (f *fakeTeacherStore) Find(ctx context.Context, conn database.Conn, id string) (*entity.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTeacherStore) Exists(ctx context.Context, conn database.Conn, id, email string) (bool, error) {
	_, ok := f.teachers[id]
	return ok, nil
}

func (f *fakeTeacherStore) Create(ctx context.Context, conn database.Conn, t *entity.Teacher) error {
	f.teachers[t.TeacherID] = t
	return nil
}

// faultyHasher simulates an internal hashing fault.
type faultyHasher struct{}

func (faultyHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", hashing.ErrEmptyPassword
	}
	return "", errors.New("entropy source unavailable")
}

func (faultyHasher) Verify(digest, password string) bool { return false }

func newService(t *testing.T, students *fakeStudentStore, teachers *fakeTeacherStore, hasher hashing.Hasher) (*auth.Service, *fakePool) {
	t.Helper()
	pool := &fakePool{}
	scope := database.NewScope(pool)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	return auth.NewService(scope, students, teachers, hasher, logger), pool
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func validRegistration() auth.Registration {
	return auth.Registration{
		ID:          "S1",
		Name:        "Sam Student",
		Email:       "sam@example.edu",
		PhoneNumber: "5550100",
		Password:    "p@ss1",
		Gender:      "other",
		Department:  "CSE",
	}
}

func TestRegisterStudent(t *testing.T) {
	t.Run("stores a digest, never the plaintext", func(t *testing.T) {
		students := newFakeStudentStore()
		svc, pool := newService(t, students, newFakeTeacherStore(), hashing.NewPBKDF2Hasher())

		require.NoError(t, svc.RegisterStudent(context.Background(), validRegistration()))

		stored := students.students["S1"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "p@ss1", stored.PasswordDigest)
		assert.Regexp(t, `^pbkdf2:sha256:\d+:[^:]+:[^:]+$`, stored.PasswordDigest)
		assert.Equal(t, 1, pool.releases, "one scope, one release")
	})

	t.Run("duplicate identifier is rejected with the canonical message", func(t *testing.T) {
		students := newFakeStudentStore()
		svc, pool := newService(t, students, newFakeTeacherStore(), hashing.NewPBKDF2Hasher())

		require.NoError(t, svc.RegisterStudent(context.Background(), validRegistration()))
		err := svc.RegisterStudent(context.Background(), validRegistration())

		var rej *auth.RejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, auth.MsgAccountExists, rej.Message)
		assert.Equal(t, 2, pool.releases, "rejection still releases the scope")
	})

	t.Run("invalid email is user-correctable input", func(t *testing.T) {
		svc, _ := newService(t, newFakeStudentStore(), newFakeTeacherStore(), hashing.NewPBKDF2Hasher())

		in := validRegistration()
		in.Email = "not-an-email"
		err := svc.RegisterStudent(context.Background(), in)

		var invalid *auth.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("empty password is invalid input", func(t *testing.T) {
		svc, pool := newService(t, newFakeStudentStore(), newFakeTeacherStore(), hashing.NewPBKDF2Hasher())

		in := validRegistration()
		in.Password = ""
		err := svc.RegisterStudent(context.Background(), in)

		var invalid *auth.InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, auth.MsgEmptyPassword, invalid.Message)
		assert.Equal(t, 0, pool.acquisitions, "no store access for invalid input")
	})

	t.Run("hashing fault rejects without writing a record", func(t *testing.T) {
		students := newFakeStudentStore()
		svc, pool := newService(t, students, newFakeTeacherStore(), faultyHasher{})

		err := svc.RegisterStudent(context.Background(), validRegistration())

		var rej *auth.RejectedError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, auth.MsgUnableToCreate, rej.Message)
		assert.Empty(t, students.students)
		assert.Equal(t, 0, pool.acquisitions)
	})
}

func TestLoginStudent(t *testing.T) {
	seed := func(t *testing.T) (*auth.Service, *fakeStudentStore, *fakePool) {
		t.Helper()
		students := newFakeStudentStore()
		svc, pool := newService(t, students, newFakeTeacherStore(), hashing.NewPBKDF2Hasher())
		require.NoError(t, svc.RegisterStudent(context.Background(), validRegistration()))
		return svc, students, pool
	}

	t.Run("registered password logs in and reports the identity", func(t *testing.T) {
		svc, _, _ := seed(t)

		identity, err := svc.LoginStudent(context.Background(), "S1", "p@ss1")
		require.NoError(t, err)
		assert.Equal(t, session.RoleStudent, identity.Role)
		assert.Equal(t, "S1", identity.SubjectID)
		assert.Equal(t, "Sam Student", identity.DisplayName)
		assert.Equal(t, "CSE", identity.Department)
	})

	t.Run("wrong password, unknown identifier, and legacy plaintext are indistinguishable", func(t *testing.T) {
		svc, students, _ := seed(t)
		students.students["LEGACY"] = &entity.Student{
			StudentID:      "LEGACY",
			StudentName:    "Legacy Student",
			Email:          "legacy@example.edu",
			PasswordDigest: "plaintext-password",
		}

		var messages []string
		for _, attempt := range [][2]string{
			{"S1", "wrongpw"},
			{"GHOST", "p@ss1"},
			{"LEGACY", "plaintext-password"},
		} {
			_, err := svc.LoginStudent(context.Background(), attempt[0], attempt[1])
			var rej *auth.RejectedError
			require.ErrorAs(t, err, &rej, "attempt %v", attempt)
			messages = append(messages, rej.Message)
		}

		for _, msg := range messages {
			assert.Equal(t, auth.MsgInvalidCredentials, msg)
		}
	})

	t.Run("store fault renders only the generic message", func(t *testing.T) {
		svc, students, pool := seed(t)
		students.findErr = errors.New("connection reset by peer: 10.0.0.5")

		_, err := svc.LoginStudent(context.Background(), "S1", "p@ss1")
		require.Error(t, err)
		assert.True(t, auth.IsFault(err))
		assert.Equal(t, auth.MsgStoreFault, auth.UserMessage(err))
		assert.NotContains(t, auth.UserMessage(err), "10.0.0.5")
		assert.Equal(t, pool.acquisitions, pool.releases, "fault still releases the scope")
	})
}

func TestLoginTeacher(t *testing.T) {
	students := newFakeStudentStore()
	teachers := newFakeTeacherStore()
	svc, _ := newService(t, students, teachers, hashing.NewPBKDF2Hasher())

	in := validRegistration()
	in.ID = "T1"
	in.Name = "Tess Teacher"
	in.Email = "tess@example.edu"
	in.Department = "ECE"
	require.NoError(t, svc.RegisterTeacher(context.Background(), in))

	identity, err := svc.LoginTeacher(context.Background(), "T1", "p@ss1")
	require.NoError(t, err)
	assert.Equal(t, session.RoleTeacher, identity.Role)
	assert.Equal(t, "T1", identity.SubjectID)

	_, err = svc.LoginTeacher(context.Background(), "T1", "wrong")
	var rej *auth.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, auth.MsgInvalidCredentials, rej.Message)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, auth.MsgStoreFault, auth.UserMessage(fmt.Errorf("driver: bad connection")))
	assert.Equal(t, auth.MsgAccountExists, auth.UserMessage(&auth.RejectedError{Message: auth.MsgAccountExists}))
	assert.Equal(t, "Name is required.", auth.UserMessage(&auth.InvalidInputError{Message: "Name is required."}))
}
