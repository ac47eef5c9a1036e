package controllers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"muse/app/models"
	"muse/app/services"
	"muse/app/session"
)

// PostController handles board pages and post mutations.
type PostController struct {
	base
	posts *services.PostService
}

// NewPostController creates a new PostController.
func NewPostController(sessions *session.Store, posts *services.PostService, basePath string) *PostController {
	return &PostController{
		base:  base{sessions: sessions, templates: loadTemplates(basePath)},
		posts: posts,
	}
}

// Home redirects to the first page of the board.
func (c *PostController) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/posts/1", http.StatusSeeOther)
}

// NotFoundPage renders the generic not-found page.
func (c *PostController) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}
	c.render(w, sess, "not-found", nil)
}

// Index renders one page of the board. Malformed and out-of-range page
// numbers land on the not-found page.
func (c *PostController) Index(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	page, err := intVar(r, "pageNumber")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	board, err := c.posts.BoardPage(r.Context(), page)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}

	c.render(w, sess, "posts", map[string]any{
		"Posts":      board.Posts,
		"PageNumber": board.PageNumber,
		"PageCount":  board.PageCount,
	})
}

// Show renders one post with a page of its comments.
func (c *PostController) Show(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	postID, err := intVar(r, "postId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}
	commentsPage, err := intVar(r, "commentsPage")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	page, err := c.posts.PostPage(r.Context(), postID, commentsPage)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}

	// Remember where to come back to after editing a comment here.
	sess.RedirectPath = r.URL.RequestURI()
	c.renderPostPage(w, sess, "post", page)
}

// CreatePage renders the new-post form.
func (c *PostController) CreatePage(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}
	c.render(w, sess, "create-post", nil)
}

// Create validates the submitted fields and inserts a new post owned by the
// signed-in user.
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	form := postForm(r)
	if msgs := form.Validate(); len(msgs) > 0 {
		for _, msg := range msgs {
			sess.AddFlash("error", msg)
		}
		c.render(w, sess, "create-post", map[string]any{"Form": form})
		return
	}

	if err := c.posts.CreatePost(r.Context(), sess.Username, form); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.AddFlash("success", "Post created.")
	c.redirect(w, r, sess, "/posts/1")
}

// UserPosts renders every post by one user. An unknown username lands on
// the not-found page; a user with no posts gets an empty listing.
func (c *PostController) UserPosts(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	username := mux.Vars(r)["username"]
	posts, err := c.posts.UserPosts(r.Context(), username)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}

	c.render(w, sess, "user-posts", map[string]any{
		"Posts": posts,
		"User":  username,
	})
}

// EditPage renders the edit form for a post, owner only.
func (c *PostController) EditPage(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	postID, err := intVar(r, "postId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}
	commentsPage, err := intVar(r, "commentsPage")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	page, err := c.posts.EditPage(r.Context(), sess.Username, postID, commentsPage)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.RedirectPath = r.URL.RequestURI()
	c.renderPostPage(w, sess, "edit-post", page)
}

// Update rewrites a post's fields, owner only.
func (c *PostController) Update(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	postID, err := intVar(r, "postId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	form := postForm(r)
	if msgs := form.Validate(); len(msgs) > 0 {
		// The edit form only re-renders for its owner.
		page, err := c.posts.EditPage(r.Context(), sess.Username, postID, 1)
		if err != nil {
			c.fail(w, r, sess, err)
			return
		}
		for _, msg := range msgs {
			sess.AddFlash("error", msg)
		}
		page.Post.Title = form.Title
		page.Post.Description = form.Description
		page.Post.Song = form.Song
		page.Post.Artist = form.Artist
		c.renderPostPage(w, sess, "edit-post", page)
		return
	}

	if err := c.posts.UpdatePost(r.Context(), sess.Username, postID, form); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.AddFlash("success", "Post edited.")
	c.redirect(w, r, sess, "/"+mux.Vars(r)["username"]+"/posts")
}

// Destroy deletes a post, owner only.
func (c *PostController) Destroy(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.Get(r)
	if err != nil {
		c.serverError(w, err)
		return
	}

	postID, err := intVar(r, "postId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	if err := c.posts.DeletePost(r.Context(), sess.Username, postID); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.AddFlash("success", "Post deleted.")
	c.redirect(w, r, sess, "/"+mux.Vars(r)["username"]+"/posts")
}

func (c *PostController) renderPostPage(w http.ResponseWriter, sess *session.Session, name string, page *services.PostPage) {
	c.render(w, sess, name, map[string]any{
		"Post":         page.Post,
		"Comments":     page.Comments,
		"CommentsPage": page.CommentsPage,
		"PageCount":    page.PageCount,
	})
}

// redirect saves the session (flashes included) and sends the visitor on.
func (c *base) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, target string) {
	if err := sess.Save(w); err != nil {
		log.Error("saving session", "err", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func postForm(r *http.Request) *models.PostForm {
	return &models.PostForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Song:        r.FormValue("song"),
		Artist:      r.FormValue("artist"),
	}
}
