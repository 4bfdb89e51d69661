package middleware

import (
	"net/http"

	"ams/internal/session"
)

// LoginPath returns the login surface for a role, the redirect target for
// anonymous requests to that role's pages.
func LoginPath(role string) string {
	if role == session.RoleTeacher {
		return "/teacher"
	}
	return "/student"
}

// DashboardPath returns the landing page for an authenticated role.
func DashboardPath(role string) string {
	if role == session.RoleTeacher {
		return "/teacher-dashboard"
	}
	return "/student-dashboard"
}

// RequireAuth guards a protected route. Anonymous requests are redirected
// to the role's login surface instead of seeing protected content; a
// valid session with the wrong role is sent to its own dashboard.
func RequireAuth(sessions *session.Manager, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := sessions.Current(r)
		if !ok {
			http.Redirect(w, r, LoginPath(role), http.StatusSeeOther)
			return
		}

		if identity.Role != role {
			http.Redirect(w, r, DashboardPath(identity.Role), http.StatusSeeOther)
			return
		}

		next(w, r)
	}
}
