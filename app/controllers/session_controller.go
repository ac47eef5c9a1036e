package controllers

import (
	"net/http"

	"github.com/charmbracelet/log"

	"muse/app/models"
	"muse/app/services"
	"muse/app/session"
)

// SessionController handles signing in and out.
type SessionController struct {
	base
	auth *services.AuthService
}

// NewSessionController creates a new SessionController.
func NewSessionController(sessions *session.Store, auth *services.AuthService, basePath string) *SessionController {
	return &SessionController{
		base: base{sessions: sessions, templates: loadTemplates(basePath)},
		auth: auth,
	}
}

// SigninPage renders the signin form.
func (c *SessionController) SigninPage(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}
	c.render(w, sess, "signin", nil)
}

// Signin checks submitted credentials and opens an authenticated session.
// Bad credentials and unknown usernames produce the same message.
func (c *SessionController) Signin(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	form := models.SigninForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if msgs := form.Validate(); len(msgs) > 0 {
		for _, msg := range msgs {
			sess.AddFlash("error", msg)
		}
		c.render(w, sess, "signin", map[string]any{"SigninUsername": form.Username})
		return
	}

	valid, err := c.auth.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}
	if !valid {
		sess.AddFlash("error", "Invalid credentials. Please try again.")
		c.render(w, sess, "signin", map[string]any{"SigninUsername": form.Username})
		return
	}

	sess.SignIn(form.Username)
	sess.AddFlash("info", "Signed in.")

	target := sess.ReturnTo
	sess.ReturnTo = ""
	if target == "" {
		target = "/posts/1"
	}
	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Signout closes the authenticated session.
func (c *SessionController) Signout(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	sess.SignOut()
	sess.AddFlash("info", "Signed out.")
	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}
