package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ams/internal/middleware"
	"ams/internal/session"
)

func protected(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("protected content"))
	}
}

func TestRequireAuth(t *testing.T) {
	m := session.NewManager([]byte(strings.Repeat("k", 32)))

	login := func(t *testing.T, id session.Identity) []*http.Cookie {
		t.Helper()
		rec := httptest.NewRecorder()
		require.NoError(t, m.Establish(rec, httptest.NewRequest(http.MethodPost, "/student", nil), id))
		return rec.Result().Cookies()
	}

	t.Run("anonymous request redirects to the login surface", func(t *testing.T) {
		handler := middleware.RequireAuth(m, session.RoleStudent, protected(t))

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/student-dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/student", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "protected content")
	})

	t.Run("tampered cookie redirects like a missing one", func(t *testing.T) {
		handler := middleware.RequireAuth(m, session.RoleStudent, protected(t))

		cookies := login(t, session.Identity{Role: session.RoleStudent, SubjectID: "S1", DisplayName: "Sam", Department: "CSE"})
		r := httptest.NewRequest(http.MethodGet, "/student-dashboard", nil)
		for _, c := range cookies {
			c.Value = "tampered" + c.Value
			r.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler(rec, r)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/student", rec.Header().Get("Location"))
	})

	t.Run("authenticated request passes through", func(t *testing.T) {
		handler := middleware.RequireAuth(m, session.RoleStudent, protected(t))

		r := httptest.NewRequest(http.MethodGet, "/student-dashboard", nil)
		for _, c := range login(t, session.Identity{Role: session.RoleStudent, SubjectID: "S1", DisplayName: "Sam", Department: "CSE"}) {
			r.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "protected content")
	})

	t.Run("wrong role is partitioned to its own dashboard", func(t *testing.T) {
		handler := middleware.RequireAuth(m, session.RoleTeacher, protected(t))

		r := httptest.NewRequest(http.MethodGet, "/teacher-dashboard", nil)
		for _, c := range login(t, session.Identity{Role: session.RoleStudent, SubjectID: "S1", DisplayName: "Sam", Department: "CSE"}) {
			r.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler(rec, r)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/student-dashboard", rec.Header().Get("Location"))
	})
}
