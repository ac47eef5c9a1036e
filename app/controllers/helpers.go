package controllers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"muse/app/repositories"
	"muse/app/services"
	"muse/app/session"
)

// base carries what every controller needs: the session store and the
// parsed templates.
type base struct {
	sessions  *session.Store
	templates map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	// pages enumerates 1..n for pagination links.
	"pages": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

// loadTemplates loads and parses all templates relative to basePath.
func loadTemplates(basePath string) map[string]*template.Template {
	pages := []string{
		"signin",
		"posts",
		"post",
		"create-post",
		"edit-post",
		"edit-comment",
		"user-posts",
		"not-found",
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		templates[page] = template.Must(
			template.New("layout.html").Funcs(templateFuncs).ParseFiles(
				filepath.Join(basePath, "app/views/layout.html"),
				filepath.Join(basePath, "app/views/"+page+".html"),
			))
	}
	return templates
}

// render executes the named template with session facts folded in. Flashes
// are drained here, so the session is saved as part of rendering.
func (c *base) render(w http.ResponseWriter, sess *session.Session, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["SignedIn"] = sess.SignedIn
	data["Username"] = sess.Username
	data["Flashes"] = sess.PopFlashes()

	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	if err := c.templates[name].ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Error("rendering template", "template", name, "err", err)
	}
}

// fail maps a service failure onto the user-facing outcome: missing or
// malformed resources redirect to the not-found page, authorization
// rejections bounce the visitor to their own posts, and anything else is an
// infrastructure failure that gets logged and answered generically.
func (c *base) fail(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.redirectNotFound(w, r, sess)
	case errors.Is(err, services.ErrUnauthorized):
		c.redirectUnauthorized(w, r, sess)
	default:
		c.serverError(w, err)
	}
}

// serverError answers an infrastructure failure without leaking its cause.
func (c *base) serverError(w http.ResponseWriter, err error) {
	log.Error("request failed", "err", err)
	http.Error(w, "Something went wrong.", http.StatusInternalServerError)
}

func (c *base) redirectNotFound(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	sess.AddFlash("error", "Page not found.")
	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	http.Redirect(w, r, "/not-found", http.StatusSeeOther)
}

func (c *base) redirectUnauthorized(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	sess.AddFlash("error", fmt.Sprintf("Unauthorized. Redirected to %s's posts.", sess.Username))
	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	http.Redirect(w, r, "/"+sess.Username+"/posts", http.StatusSeeOther)
}

// intVar parses a numeric path variable. A value that does not parse reads
// the same as a missing resource.
func intVar(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, repositories.ErrNotFound
	}
	return v, nil
}
