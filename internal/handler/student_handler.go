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

// StudentHandler serves the student login and registration surfaces.
type StudentHandler struct {
	svc          *auth.Service
	sessions     *session.Manager
	logger       *slog.Logger
	tmplLogin    *template.Template
	tmplRegister *template.Template
}

func NewStudentHandler(svc *auth.Service, sessions *session.Manager, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		svc:          svc,
		sessions:     sessions,
		logger:       logger,
		tmplLogin:    templates.Must("student.html"),
		tmplRegister: templates.Must("student_new.html"),
	}
}

// Login handles GET (form) and POST (credential check) on /student.
func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.loginPage(w, r, "", "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unable to process the form.", http.StatusBadRequest)
		return
	}

	studentID := strings.TrimSpace(r.FormValue("sname"))
	password := r.FormValue("password")

	identity, err := h.svc.LoginStudent(r.Context(), studentID, password)
	if err != nil {
		h.loginPage(w, r, auth.UserMessage(err), studentID)
		return
	}

	if err := h.sessions.Establish(w, r, identity); err != nil {
		h.logger.Error("unexpected-fault", "operation", "student-session-establish", "cause", err)
		h.loginPage(w, r, auth.MsgStoreFault, studentID)
		return
	}

	http.Redirect(w, r, middleware.DashboardPath(session.RoleStudent), http.StatusSeeOther)
}

func (h *StudentHandler) loginPage(w http.ResponseWriter, r *http.Request, errMsg, studentID string) {
	if identity, ok := h.sessions.Current(r); ok && errMsg == "" {
		http.Redirect(w, r, middleware.DashboardPath(identity.Role), http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"Error": errMsg,
		"Form":  map[string]string{"sname": studentID},
	}
	h.tmplLogin.Execute(w, data)
}

// Register handles GET (form) and POST (account creation) on /student-new.
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.registerPage(w, "", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Unable to process the form.", http.StatusBadRequest)
		return
	}

	in := auth.Registration{
		ID:          strings.TrimSpace(r.FormValue("student_id")),
		Name:        strings.TrimSpace(r.FormValue("student_name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		Password:    r.FormValue("password"),
		Gender:      r.FormValue("student_gender"),
		Department:  strings.TrimSpace(r.FormValue("student_dept")),
	}

	if err := h.svc.RegisterStudent(r.Context(), in); err != nil {
		h.registerPage(w, auth.UserMessage(err), map[string]string{
			"student_name": in.Name,
			"student_id":   in.ID,
			"email":        in.Email,
			"phone_number": in.PhoneNumber,
			"student_dept": in.Department,
		})
		return
	}

	http.Redirect(w, r, middleware.LoginPath(session.RoleStudent), http.StatusSeeOther)
}

func (h *StudentHandler) registerPage(w http.ResponseWriter, errMsg string, form map[string]string) {
	if form == nil {
		form = map[string]string{}
	}
	data := map[string]interface{}{
		"Error": errMsg,
		"Form":  form,
	}
	h.tmplRegister.Execute(w, data)
}
