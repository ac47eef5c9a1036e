package middleware

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"muse/app/session"
)

// Logger logs information about each request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Recoverer turns a panic into a generic failure response. The cause is
// logged; none of it reaches the client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", "err", err, "path", r.URL.Path)
				http.Error(w, "Something went wrong.", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequiresAuthentication redirects signed-out visitors to the signin page,
// remembering where they were headed.
func RequiresAuthentication(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r)
			if err != nil {
				log.Error("loading session", "err", err)
				http.Error(w, "Something went wrong.", http.StatusInternalServerError)
				return
			}

			if !sess.SignedIn {
				sess.ReturnTo = r.URL.RequestURI()
				sess.AddFlash("info", "Please sign in.")
				if err := sess.Save(w); err != nil {
					log.Error("saving session", "err", err)
				}
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
