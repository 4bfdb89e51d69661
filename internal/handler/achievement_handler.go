package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ams/internal/auth"
	"ams/internal/database"
	"ams/internal/entity"
	"ams/internal/repository"
	"ams/internal/session"
	"ams/internal/templates"
)

// StudentFinder is the slice of the student repository the achievement
// flows need.
type StudentFinder interface {
	Find(ctx context.Context, conn database.Conn, studentID string) (*entity.Student, error)
}

// AchievementStore persists and lists achievements.
type AchievementStore interface {
	Create(ctx context.Context, conn database.Conn, a *entity.Achievement) error
	ListByTeacher(ctx context.Context, conn database.Conn, teacherID string) ([]entity.Achievement, error)
	Recent(ctx context.Context, conn database.Conn, teacherID string, limit int) ([]entity.Achievement, error)
	DashboardStats(ctx context.Context, conn database.Conn, teacherID string) (repository.TeacherDashboardStats, error)
}

// AchievementHandler serves the dashboards and achievement flows. It is a
// business-logic consumer of the auth core: identity comes only from the
// session manager, never from the credential store.
type AchievementHandler struct {
	scope        *database.Scope
	students     StudentFinder
	achievements AchievementStore
	sessions     *session.Manager
	logger       *slog.Logger

	tmplStudentDashboard    *template.Template
	tmplStudentAchievements *template.Template
	tmplTeacherDashboard    *template.Template
	tmplAllAchievements     *template.Template
	tmplSubmit              *template.Template
}

func NewAchievementHandler(scope *database.Scope, students StudentFinder, achievements AchievementStore, sessions *session.Manager, logger *slog.Logger) *AchievementHandler {
	return &AchievementHandler{
		scope:                   scope,
		students:                students,
		achievements:            achievements,
		sessions:                sessions,
		logger:                  logger,
		tmplStudentDashboard:    templates.Must("student_dashboard.html"),
		tmplStudentAchievements: templates.Must("student_achievements.html"),
		tmplTeacherDashboard:    templates.Must("teacher_dashboard.html"),
		tmplAllAchievements:     templates.Must("all_achievements.html"),
		tmplSubmit:              templates.Must("submit_achievements.html"),
	}
}

func studentData(id session.Identity) map[string]string {
	return map[string]string{
		"ID":   id.SubjectID,
		"Name": id.DisplayName,
		"Dept": id.Department,
	}
}

func (h *AchievementHandler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := h.sessions.Current(r)
	h.tmplStudentDashboard.Execute(w, map[string]interface{}{
		"Student": studentData(identity),
	})
}

func (h *AchievementHandler) StudentAchievements(w http.ResponseWriter, r *http.Request) {
	identity, _ := h.sessions.Current(r)
	h.tmplStudentAchievements.Execute(w, map[string]interface{}{
		"Student": studentData(identity),
	})
}

func (h *AchievementHandler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := h.sessions.Current(r)

	var stats repository.TeacherDashboardStats
	var recent []entity.Achievement

	err := h.scope.Run(r.Context(), func(ctx context.Context, conn database.Conn) error {
		var err error
		if stats, err = h.achievements.DashboardStats(ctx, conn, identity.SubjectID); err != nil {
			return err
		}
		recent, err = h.achievements.Recent(ctx, conn, identity.SubjectID, 5)
		return err
	})

	data := map[string]interface{}{
		"Teacher": map[string]string{
			"ID":   identity.SubjectID,
			"Name": identity.DisplayName,
			"Dept": identity.Department,
		},
		"Stats":  stats,
		"Recent": recent,
		"Error":  "",
	}
	if err != nil {
		h.logger.Error("unexpected-fault", "operation", "teacher-dashboard", "cause", err)
		data["Error"] = auth.MsgStoreFault
	}

	h.tmplTeacherDashboard.Execute(w, data)
}

func (h *AchievementHandler) AllAchievements(w http.ResponseWriter, r *http.Request) {
	identity, _ := h.sessions.Current(r)

	var list []entity.Achievement
	err := h.scope.Run(r.Context(), func(ctx context.Context, conn database.Conn) error {
		var err error
		list, err = h.achievements.ListByTeacher(ctx, conn, identity.SubjectID)
		return err
	})
	if err != nil {
		h.logger.Error("unexpected-fault", "operation", "all-achievements", "cause", err)
	}

	h.tmplAllAchievements.Execute(w, map[string]interface{}{
		"Achievements": list,
	})
}

// SubmitAchievements handles GET (form) and POST (record the achievement)
// on /submit_achievements. The student lookup and the insert share one
// connection scope.
func (h *AchievementHandler) SubmitAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.submitPage(w, "", "")
		return
	}

	identity, _ := h.sessions.Current(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unable to process the form.", http.StatusBadRequest)
		return
	}

	dateStr := r.FormValue("achievement_date")
	if dateStr == "" {
		h.submitPage(w, "Achievement date is required.", "")
		return
	}
	achievementDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		h.submitPage(w, "Invalid date format. Please use YYYY-MM-DD.", "")
		return
	}

	var teamSize *int
	if raw := strings.TrimSpace(r.FormValue("team_size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.submitPage(w, "Team size must be a number.", "")
			return
		}
		teamSize = &n
	}

	studentID := strings.TrimSpace(r.FormValue("student_id"))

	var studentName string
	err = h.scope.Run(r.Context(), func(ctx context.Context, conn database.Conn) error {
		student, err := h.students.Find(ctx, conn, studentID)
		if err != nil {
			return err
		}
		studentName = student.StudentName

		return h.achievements.Create(ctx, conn, &entity.Achievement{
			StudentID:              studentID,
			TeacherID:              identity.SubjectID,
			AchievementType:        r.FormValue("achievement_type"),
			EventName:              r.FormValue("event_name"),
			AchievementDate:        achievementDate,
			Organizer:              r.FormValue("organizer"),
			Position:               r.FormValue("position"),
			AchievementDescription: r.FormValue("achievement_description"),
			SymposiumTheme:         r.FormValue("symposium_theme"),
			ProgrammingLanguage:    r.FormValue("programming_language"),
			CodingPlatform:         r.FormValue("coding_platform"),
			PaperTitle:             r.FormValue("paper_title"),
			JournalName:            r.FormValue("journal_name"),
			ConferenceLevel:        r.FormValue("conference_level"),
			ConferenceRole:         r.FormValue("conference_role"),
			TeamSize:               teamSize,
			ProjectTitle:           r.FormValue("project_title"),
			DatabaseType:           r.FormValue("database_type"),
			DifficultyLevel:        r.FormValue("difficulty_level"),
			OtherDescription:       r.FormValue("other_description"),
		})
	})
	if errors.Is(err, repository.ErrNotFound) {
		h.submitPage(w, "Student ID does not exist in the system.", "")
		return
	}
	if err != nil {
		h.logger.Error("unexpected-fault", "operation", "submit-achievement", "cause", err)
		h.submitPage(w, "An error occurred. Please try again.", "")
		return
	}

	h.submitPage(w, "", "Achievement of "+studentName+" has been successfully registered!!")
}

func (h *AchievementHandler) submitPage(w http.ResponseWriter, errMsg, successMsg string) {
	h.tmplSubmit.Execute(w, map[string]interface{}{
		"Error":   errMsg,
		"Success": successMsg,
	})
}
