package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"ams/internal/auth"
	"ams/internal/middleware"
	"ams/internal/session"
	"ams/internal/templates"
)

// TeacherHandler serves the teacher login and registration surfaces.
type TeacherHandler struct {
	svc          *auth.Service
	sessions     *session.Manager
	logger       *slog.Logger
	tmplLogin    *template.Template
	tmplRegister *template.Template
}

func NewTeacherHandler(svc *auth.Service, sessions *session.Manager, logger *slog.Logger) *TeacherHandler {
	return &TeacherHandler{
		svc:          svc,
		sessions:     sessions,
		logger:       logger,
		tmplLogin:    templates.Must("teacher.html"),
		tmplRegister: templates.Must("teacher_new.html"),
	}
}

// Login handles GET (form) and POST (credential check) on /teacher.
func (h *TeacherHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.loginPage(w, r, "", "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unable to process the form.", http.StatusBadRequest)
		return
	}

	teacherID := strings.TrimSpace(r.FormValue("tname"))
	password := r.FormValue("password")

	identity, err := h.svc.LoginTeacher(r.Context(), teacherID, password)
	if err != nil {
		h.loginPage(w, r, auth.UserMessage(err), teacherID)
		return
	}

	if err := h.sessions.Establish(w, r, identity); err != nil {
		h.logger.Error("unexpected-fault", "operation", "teacher-session-establish", "cause", err)
		h.loginPage(w, r, auth.MsgStoreFault, teacherID)
		return
	}

	http.Redirect(w, r, middleware.DashboardPath(session.RoleTeacher), http.StatusSeeOther)
}

func (h *TeacherHandler) loginPage(w http.ResponseWriter, r *http.Request, errMsg, teacherID string) {
	if identity, ok := h.sessions.Current(r); ok && errMsg == "" {
		http.Redirect(w, r, middleware.DashboardPath(identity.Role), http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Error": errMsg,
		"Form":  map[string]string{"tname": teacherID},
	}
	h.tmplLogin.Execute(w, data)
}

// Register handles GET (form) and POST (account creation) on /teacher-new.
func (h *TeacherHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.registerPage(w, "", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unable to process the form.", http.StatusBadRequest)
		return
	}

	in := auth.Registration{
		ID:          strings.TrimSpace(r.FormValue("teacher_id")),
		Name:        strings.TrimSpace(r.FormValue("teacher_name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		Password:    r.FormValue("password"),
		Gender:      r.FormValue("teacher_gender"),
		Department:  strings.TrimSpace(r.FormValue("teacher_dept")),
	}

	if err := h.svc.RegisterTeacher(r.Context(), in); err != nil {
		h.registerPage(w, auth.UserMessage(err), map[string]string{
			"teacher_name": in.Name,
			"teacher_id":   in.ID,
			"email":        in.Email,
			"phone_number": in.PhoneNumber,
			"teacher_dept": in.Department,
		})
		return
	}

	http.Redirect(w, r, middleware.LoginPath(session.RoleTeacher), http.StatusSeeOther)
}

func (h *TeacherHandler) registerPage(w http.ResponseWriter, errMsg string, form map[string]string) {
	if form == nil {
		form = map[string]string{}
	}
	data := map[string]interface{}{
		"Error": errMsg,
		"Form":  form,
	}
	h.tmplRegister.Execute(w, data)
}
