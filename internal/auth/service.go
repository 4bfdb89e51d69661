// Package auth orchestrates registration and login for students and
// teachers: input validation, credential hashing and verification, and
// the mapping of every outcome onto a uniform error taxonomy.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"ams/internal/database"
	"ams/internal/entity"
	"ams/internal/hashing"
	"ams/internal/repository"
	"ams/internal/session"
)

// StudentStore is the slice of the student repository the flows need.
type StudentStore interface {
	Find(ctx context.Context, conn database.Conn, studentID string) (*entity.Student, error)
	Exists(ctx context.Context, conn database.Conn, studentID, email string) (bool, error)
	Create(ctx context.Context, conn database.Conn, s *entity.Student) error
}

// TeacherStore is the slice of the teacher repository the flows need.
type TeacherStore interface {
	Find(ctx context.Context, conn database.Conn, teacherID string) (*entity.Teacher, error)
	Exists(ctx context.Context, conn database.Conn, teacherID, email string) (bool, error)
	Create(ctx context.Context, conn database.Conn, t *entity.Teacher) error
}

// Service is the authentication flow controller.
type Service struct {
	scope    *database.Scope
	students StudentStore
	teachers TeacherStore
	hasher   hashing.Hasher
	logger   *slog.Logger
}

func NewService(scope *database.Scope, students StudentStore, teachers TeacherStore, hasher hashing.Hasher, logger *slog.Logger) *Service {
	return &Service{
		scope:    scope,
		students: students,
		teachers: teachers,
		hasher:   hasher,
		logger:   logger,
	}
}

// Registration carries the validated form fields for a new account.
type Registration struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Gender      string
	Department  string
}

func (in *Registration) validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return invalidInput("ID is required.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("Name is required.")
	}
	if strings.TrimSpace(in.Email) == "" {
		return invalidInput("Email is required.")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return invalidInput("Email address is not valid.")
	}
	if in.Password == "" {
		return invalidInput(MsgEmptyPassword)
	}
	return nil
}

// hashPassword maps hasher outcomes onto the taxonomy: an empty password
// is invalid input, any internal hashing fault becomes the generic
// creation rejection with the cause logged server-side only.
func (s *Service) hashPassword(role, password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err == nil {
		return digest, nil
	}
	if errors.Is(err, hashing.ErrEmptyPassword) {
		return "", invalidInput(MsgEmptyPassword)
	}
	s.logger.Error("unexpected-fault",
		"operation", role+"-registration-hash",
		"cause", err)
	return "", rejected(MsgUnableToCreate)
}

// RegisterStudent creates a student identity record. The duplicate check
// and the insert run under a single connection scope.
func (s *Service) RegisterStudent(ctx context.Context, in Registration) error {
	if err := in.validate(); err != nil {
		return err
	}

	digest, err := s.hashPassword(session.RoleStudent, in.Password)
	if err != nil {
		return err
	}

	err = s.scope.Run(ctx, func(ctx context.Context, conn database.Conn) error {
		exists, err := s.students.Exists(ctx, conn, in.ID, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return rejected(MsgAccountExists)
		}

		return s.students.Create(ctx, conn, &entity.Student{
			StudentID:      in.ID,
			StudentName:    in.Name,
			Email:          in.Email,
			PhoneNumber:    in.PhoneNumber,
			PasswordDigest: digest,
			StudentGender:  in.Gender,
			StudentDept:    in.Department,
		})
	})
	return s.mapRegistrationErr("student", err)
}

// RegisterTeacher creates a teacher identity record.
func (s *Service) RegisterTeacher(ctx context.Context, in Registration) error {
	if err := in.validate(); err != nil {
		return err
	}

	digest, err := s.hashPassword(session.RoleTeacher, in.Password)
	if err != nil {
		return err
	}

	err = s.scope.Run(ctx, func(ctx context.Context, conn database.Conn) error {
		exists, err := s.teachers.Exists(ctx, conn, in.ID, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return rejected(MsgAccountExists)
		}

		return s.teachers.Create(ctx, conn, &entity.Teacher{
			TeacherID:      in.ID,
			TeacherName:    in.Name,
			Email:          in.Email,
			PhoneNumber:    in.PhoneNumber,
			PasswordDigest: digest,
			TeacherGender:  in.Gender,
			TeacherDept:    in.Department,
		})
	})
	return s.mapRegistrationErr("teacher", err)
}

func (s *Service) mapRegistrationErr(role string, err error) error {
	if err == nil {
		return nil
	}
	// A concurrent registration can slip past the pre-check; the store's
	// uniqueness constraint maps to the same rejection.
	if repository.IsUniqueViolation(err) {
		return rejected(MsgAccountExists)
	}
	if IsFault(err) {
		s.logger.Error("unexpected-fault",
			"operation", role+"-registration",
			"cause", err)
	}
	return err
}

// LoginStudent verifies a student's credentials and returns the identity
// to establish. Unknown identifier, wrong password, and a malformed
// stored digest all produce the identical rejection.
func (s *Service) LoginStudent(ctx context.Context, studentID, password string) (session.Identity, error) {
	var identity session.Identity

	err := s.scope.Run(ctx, func(ctx context.Context, conn database.Conn) error {
		student, err := s.students.Find(ctx, conn, studentID)
		if errors.Is(err, repository.ErrNotFound) {
			return s.rejectLogin(session.RoleStudent, studentID)
		}
		if err != nil {
			return err
		}

		if !s.hasher.Verify(student.PasswordDigest, password) {
			return s.rejectLogin(session.RoleStudent, studentID)
		}

		identity = session.Identity{
			Role:        session.RoleStudent,
			SubjectID:   student.StudentID,
			DisplayName: student.StudentName,
			Department:  student.StudentDept,
		}
		return nil
	})
	if err != nil {
		return session.Identity{}, s.mapLoginErr(session.RoleStudent, err)
	}

	return identity, nil
}

// LoginTeacher verifies a teacher's credentials and returns the identity
// to establish.
func (s *Service) LoginTeacher(ctx context.Context, teacherID, password string) (session.Identity, error) {
	var identity session.Identity

	err := s.scope.Run(ctx, func(ctx context.Context, conn database.Conn) error {
		teacher, err := s.teachers.Find(ctx, conn, teacherID)
		if errors.Is(err, repository.ErrNotFound) {
			return s.rejectLogin(session.RoleTeacher, teacherID)
		}
		if err != nil {
			return err
		}

		if !s.hasher.Verify(teacher.PasswordDigest, password) {
			return s.rejectLogin(session.RoleTeacher, teacherID)
		}

		identity = session.Identity{
			Role:        session.RoleTeacher,
			SubjectID:   teacher.TeacherID,
			DisplayName: teacher.TeacherName,
			Department:  teacher.TeacherDept,
		}
		return nil
	})
	if err != nil {
		return session.Identity{}, s.mapLoginErr(session.RoleTeacher, err)
	}

	return identity, nil
}

// rejectLogin records the failed attempt server-side (identifier only,
// never the password) and returns the single generic rejection.
func (s *Service) rejectLogin(role, identifier string) error {
	s.logger.Info("failed-login-attempt",
		"role", role,
		"identifier", identifier)
	return rejected(MsgInvalidCredentials)
}

func (s *Service) mapLoginErr(role string, err error) error {
	if IsFault(err) {
		s.logger.Error("unexpected-fault",
			"operation", role+"-login",
			"cause", err)
		return fmt.Errorf("%s login: %w", role, err)
	}
	return err
}
