package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ams/internal/database"
	"ams/internal/entity"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// uniqueViolation is the postgres error code for duplicate key values.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a duplicate-key error from the
// store, so the flow controller can map it to its generic rejection
// without leaking driver error text.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// StudentRepository reads and writes student identity records. Every
// method operates on the connection supplied by the caller's scope;
// repositories never hold a pool handle of their own.
type StudentRepository struct{}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{}
}

// Find fetches a student by role-scoped identifier only. The password is
// never part of the lookup predicate.
func (r *StudentRepository) Find(ctx context.Context, conn database.Conn, studentID string) (*entity.Student, error) {
	var s entity.Student
	err := conn.QueryRowContext(ctx, `
		SELECT student_id, student_name, email, COALESCE(phone_number, ''), password_digest,
		       COALESCE(student_gender, ''), COALESCE(student_dept, '')
		FROM student WHERE student_id = $1
	`, studentID).Scan(
		&s.StudentID,
		&s.StudentName,
		&s.Email,
		&s.PhoneNumber,
		&s.PasswordDigest,
		&s.StudentGender,
		&s.StudentDept,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding student: %w", err)
	}

	return &s, nil
}

// Exists reports whether a student with the given identifier or email is
// already registered.
func (r *StudentRepository) Exists(ctx context.Context, conn database.Conn, studentID, email string) (bool, error) {
	var exists bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM student WHERE student_id = $1 OR email = $2)
	`, studentID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking student existence: %w", err)
	}

	return exists, nil
}

func (r *StudentRepository) Create(ctx context.Context, conn database.Conn, s *entity.Student) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO student (student_id, student_name, email, phone_number, password_digest, student_gender, student_dept)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.StudentID, s.StudentName, s.Email, s.PhoneNumber, s.PasswordDigest, s.StudentGender, s.StudentDept)
	if err != nil {
		return fmt.Errorf("creating student: %w", err)
	}

	return nil
}
