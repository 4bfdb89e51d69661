package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"ams/internal/auth"
	"ams/internal/database"
	"ams/internal/handler"
	"ams/internal/hashing"
	"ams/internal/middleware"
	"ams/internal/repository"
	"ams/internal/session"
	"ams/internal/signingkey"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	db, err := database.Open(database.LoadConfig())
	if err != nil {
		logger.Error("database initialization failed", "cause", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("schema migration failed", "cause", err)
		os.Exit(1)
	}

	key, err := signingkey.Resolve(os.Getenv("SECRET_KEY"), logger)
	if err != nil {
		logger.Error("signing key resolution failed", "cause", err)
		os.Exit(1)
	}

	scope := database.NewScope(database.NewPool(db))
	sessions := session.NewManager(key)
	hasher := hashing.NewPBKDF2Hasher()

	students := repository.NewStudentRepository()
	teachers := repository.NewTeacherRepository()
	achievements := repository.NewAchievementRepository()

	authSvc := auth.NewService(scope, students, teachers, hasher, logger)

	homeHandler := handler.NewHomeHandler()
	indexHandler := handler.NewIndexHandler()
	studentHandler := handler.NewStudentHandler(authSvc, sessions, logger)
	teacherHandler := handler.NewTeacherHandler(authSvc, sessions, logger)
	logoutHandler := handler.NewLogoutHandler(sessions, logger)
	achievementHandler := handler.NewAchievementHandler(scope, students, achievements, sessions, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("/", homeHandler.HomePage)
	mux.HandleFunc("/index", indexHandler.IndexPage)

	mux.HandleFunc("/student", studentHandler.Login)
	mux.HandleFunc("/student-new", studentHandler.Register)
	mux.HandleFunc("/teacher", teacherHandler.Login)
	mux.HandleFunc("/teacher-new", teacherHandler.Register)
	mux.HandleFunc("/logout", logoutHandler.Logout)

	mux.HandleFunc("/student-dashboard",
		middleware.RequireAuth(sessions, session.RoleStudent, achievementHandler.StudentDashboard))
	mux.HandleFunc("/student-achievements",
		middleware.RequireAuth(sessions, session.RoleStudent, achievementHandler.StudentAchievements))
	mux.HandleFunc("/teacher-dashboard",
		middleware.RequireAuth(sessions, session.RoleTeacher, achievementHandler.TeacherDashboard))
	mux.HandleFunc("/all-achievements",
		middleware.RequireAuth(sessions, session.RoleTeacher, achievementHandler.AllAchievements))
	mux.HandleFunc("/submit_achievements",
		middleware.RequireAuth(sessions, session.RoleTeacher, achievementHandler.SubmitAchievements))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server listening", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Error("server stopped", "cause", err)
		os.Exit(1)
	}
}
