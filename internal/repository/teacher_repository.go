package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ams/internal/database"
	"ams/internal/entity"
)

// TeacherRepository reads and writes teacher identity records.
type TeacherRepository struct{}

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{}
}

func (r *TeacherRepository) Find(ctx context.Context, conn database.Conn, teacherID string) (*entity.Teacher, error) {
	var t entity.Teacher
	err := conn.QueryRowContext(ctx, `
		SELECT teacher_id, teacher_name, email, COALESCE(phone_number, ''), password_digest,
		       COALESCE(teacher_gender, ''), COALESCE(teacher_dept, '')
		FROM teacher WHERE teacher_id = $1
	`, teacherID).Scan(
		&t.TeacherID,
		&t.TeacherName,
		&t.Email,
		&t.PhoneNumber,
		&t.PasswordDigest,
		&t.TeacherGender,
		&t.TeacherDept,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding teacher: %w", err)
	}

	return &t, nil
}

func (r *TeacherRepository) Exists(ctx context.Context, conn database.Conn, teacherID, email string) (bool, error) {
	var exists bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM teacher WHERE teacher_id = $1 OR email = $2)
	`, teacherID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking teacher existence: %w", err)
	}

	return exists, nil
}

func (r *TeacherRepository) Create(ctx context.Context, conn database.Conn, t *entity.Teacher) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO teacher (teacher_id, teacher_name, email, phone_number, password_digest, teacher_gender, teacher_dept)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.TeacherID, t.TeacherName, t.Email, t.PhoneNumber, t.PasswordDigest, t.TeacherGender, t.TeacherDept)
	if err != nil {
		return fmt.Errorf("creating teacher: %w", err)
	}

	return nil
}
