package handler

import (
	"log/slog"
	"net/http"

	"ams/internal/session"
)

// LogoutHandler clears the session for both roles.
type LogoutHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewLogoutHandler(sessions *session.Manager, logger *slog.Logger) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, logger: logger}
}

// Logout erases the session and redirects to the public landing page.
// Faults are logged and swallowed: logout never presents an error page,
// and logging out while anonymous is a no-op success.
func (h *LogoutHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("unexpected-fault", "operation", "logout", "cause", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
