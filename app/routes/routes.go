package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"muse/app/controllers"
	"muse/app/middleware"
	"muse/app/session"
)

// Setup defines the application's routes and returns a router. Everything
// except signing in and the not-found page requires an authenticated
// session.
func Setup(
	sessions *session.Store,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	sessionController *controllers.SessionController,
) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	auth := middleware.RequiresAuthentication(sessions)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	// Session endpoints
	router.HandleFunc("/signin", sessionController.SigninPage).Methods("GET")
	router.HandleFunc("/signin", sessionController.Signin).Methods("POST")
	router.HandleFunc("/signout", sessionController.Signout).Methods("POST")
	router.HandleFunc("/not-found", postController.NotFoundPage).Methods("GET")

	// Board endpoints
	router.Handle("/", protected(postController.Home)).Methods("GET")
	router.Handle("/posts", protected(postController.Home)).Methods("GET")
	router.Handle("/posts/create", protected(postController.CreatePage)).Methods("GET")
	router.Handle("/posts/create", protected(postController.Create)).Methods("POST")
	router.Handle("/posts/post/{postId}/comments/{commentsPage}", protected(postController.Show)).Methods("GET")
	router.Handle("/posts/post/{postId}", protected(commentController.Create)).Methods("POST")
	router.Handle("/posts/{pageNumber}", protected(postController.Index)).Methods("GET")

	// Per-user endpoints
	router.Handle("/{username}/posts", protected(postController.UserPosts)).Methods("GET")
	router.Handle("/{username}/posts/{postId}/comments/{commentsPage}/edit", protected(postController.EditPage)).Methods("GET")
	router.Handle("/{username}/posts/{postId}/edit", protected(postController.Update)).Methods("POST")
	router.Handle("/{username}/posts/{postId}/destroy", protected(postController.Destroy)).Methods("POST")
	router.Handle("/{username}/posts/{postId}/comment/{commentId}/edit", protected(commentController.EditPage)).Methods("GET")
	router.Handle("/{username}/posts/{postId}/comment/{commentId}/edit", protected(commentController.Update)).Methods("POST")
	router.Handle("/{username}/posts/{postId}/comment/{commentId}/destroy", protected(commentController.Destroy)).Methods("POST")

	return router
}
