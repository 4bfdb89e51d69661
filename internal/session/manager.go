// Package session manages the signed, client-held identity record carried
// between requests. The server keeps no session store; authenticity rests
// entirely on the signing key.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "ams-session"

	keyAuthenticated = "authenticated"
	keyRole          = "role"
	keySubjectID     = "subject_id"
	keyDisplayName   = "display_name"
	keyDepartment    = "department"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Identity is the only identity surface other routes may consume.
type Identity struct {
	Role        string
	SubjectID   string
	DisplayName string
	Department  string
}

// Manager signs, reads, and clears session cookies.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(signingKey []byte) *Manager {
	store := sessions.NewCookieStore(signingKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Establish writes the authenticated identity into a signed cookie.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, id Identity) error {
	// Get returns a fresh session when the existing cookie fails to
	// decode, so a stale or tampered cookie is replaced, not an error.
	s, _ := m.store.Get(r, sessionName)

	s.Values[keyAuthenticated] = true
	s.Values[keyRole] = id.Role
	s.Values[keySubjectID] = id.SubjectID
	s.Values[keyDisplayName] = id.DisplayName
	s.Values[keyDepartment] = id.Department

	return s.Save(r, w)
}

// Current returns the authenticated identity carried by the request.
// Missing, malformed, and invalidly signed cookies all read as anonymous;
// none of them is an error.
func (m *Manager) Current(r *http.Request) (Identity, bool) {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return Identity{}, false
	}

	authenticated, _ := s.Values[keyAuthenticated].(bool)
	if !authenticated {
		return Identity{}, false
	}

	id := Identity{}
	id.Role, _ = s.Values[keyRole].(string)
	id.SubjectID, _ = s.Values[keySubjectID].(string)
	id.DisplayName, _ = s.Values[keyDisplayName].(string)
	id.Department, _ = s.Values[keyDepartment].(string)

	if id.SubjectID == "" || (id.Role != RoleStudent && id.Role != RoleTeacher) {
		return Identity{}, false
	}

	return id, true
}

// Clear erases every identity field and expires the cookie. Clearing an
// anonymous or already-cleared session is a no-op success.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, sessionName)

	for k := range s.Values {
		delete(s.Values, k)
	}
	s.Options.MaxAge = -1

	return s.Save(r, w)
}
