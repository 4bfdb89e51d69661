package repository

import (
	"context"
	"fmt"
	"time"

	"ams/internal/database"
	"ams/internal/entity"
)

// TeacherDashboardStats summarizes a teacher's submitted achievements.
type TeacherDashboardStats struct {
	TotalAchievements int
	StudentsManaged   int
	ThisWeek          int
}

// AchievementRepository persists achievements submitted by teachers.
type AchievementRepository struct{}

func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{}
}

func (r *AchievementRepository) Create(ctx context.Context, conn database.Conn, a *entity.Achievement) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO achievements
			(student_id, teacher_id, achievement_type, event_name, achievement_date,
			 organizer, position, achievement_description, certificate_path,
			 symposium_theme, programming_language, coding_platform, paper_title,
			 journal_name, conference_level, conference_role, team_size,
			 project_title, database_type, difficulty_level, other_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`,
		a.StudentID, a.TeacherID, a.AchievementType, a.EventName, a.AchievementDate,
		a.Organizer, a.Position, a.AchievementDescription, a.CertificatePath,
		a.SymposiumTheme, a.ProgrammingLanguage, a.CodingPlatform, a.PaperTitle,
		a.JournalName, a.ConferenceLevel, a.ConferenceRole, a.TeamSize,
		a.ProjectTitle, a.DatabaseType, a.DifficultyLevel, a.OtherDescription, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("creating achievement: %w", err)
	}

	return nil
}

// ListByTeacher returns a teacher's achievements, newest event first.
func (r *AchievementRepository) ListByTeacher(ctx context.Context, conn database.Conn, teacherID string) ([]entity.Achievement, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, student_id, teacher_id, achievement_type, event_name, achievement_date,
		       organizer, position, COALESCE(achievement_description, ''), certificate_path, created_at
		FROM achievements
		WHERE teacher_id = $1
		ORDER BY achievement_date DESC
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	var list []entity.Achievement
	for rows.Next() {
		var a entity.Achievement
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.TeacherID, &a.AchievementType, &a.EventName,
			&a.AchievementDate, &a.Organizer, &a.Position, &a.AchievementDescription,
			&a.CertificatePath, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}

	return list, nil
}

// Recent returns the teacher's most recently submitted achievements.
func (r *AchievementRepository) Recent(ctx context.Context, conn database.Conn, teacherID string, limit int) ([]entity.Achievement, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, student_id, teacher_id, achievement_type, event_name, achievement_date,
		       organizer, position, COALESCE(achievement_description, ''), certificate_path, created_at
		FROM achievements
		WHERE teacher_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, teacherID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent achievements: %w", err)
	}
	defer rows.Close()

	var list []entity.Achievement
	for rows.Next() {
		var a entity.Achievement
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.TeacherID, &a.AchievementType, &a.EventName,
			&a.AchievementDate, &a.Organizer, &a.Position, &a.AchievementDescription,
			&a.CertificatePath, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing recent achievements: %w", err)
	}

	return list, nil
}

// DashboardStats aggregates the counters shown on the teacher dashboard.
func (r *AchievementRepository) DashboardStats(ctx context.Context, conn database.Conn, teacherID string) (TeacherDashboardStats, error) {
	var stats TeacherDashboardStats
	oneWeekAgo := time.Now().AddDate(0, 0, -7)

	err := conn.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT student_id),
		       COUNT(*) FILTER (WHERE achievement_date >= $2)
		FROM achievements
		WHERE teacher_id = $1
	`, teacherID, oneWeekAgo).Scan(&stats.TotalAchievements, &stats.StudentsManaged, &stats.ThisWeek)
	if err != nil {
		return TeacherDashboardStats{}, fmt.Errorf("loading dashboard stats: %w", err)
	}

	return stats, nil
}
