package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerpath/internal/state"
)

const CookieName = "careerpath_session"

// loadSession returns the visitor's session, starting a new one when the
// cookie is missing, malformed or points at an ended session.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*state.Session, error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			s, err := h.store.Get(r.Context(), id)
			if err == nil {
				return s, nil
			}
			if !errors.Is(err, state.ErrNotFound) {
				return nil, err
			}
		}
	}

	s := state.New()
	h.setCookie(w, s.ID.String(), h.sessionTTL)
	return s, nil
}

// currentSession returns the session named by the cookie without creating one.
func (h *Handler) currentSession(r *http.Request) (*state.Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, state.ErrNotFound
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return nil, state.ErrNotFound
	}
	return h.store.Get(r.Context(), id)
}

func (h *Handler) setCookie(w http.ResponseWriter, value string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	}
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge.Seconds())
		cookie.Expires = time.Now().Add(maxAge)
	} else {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
