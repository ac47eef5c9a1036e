package controllers

import (
	"fmt"
	"net/http"

	"muse/app/models"
	"muse/app/services"
	"muse/app/session"
)

// CommentController handles comment creation and the two-owner mutations.
type CommentController struct {
	base
	comments *services.CommentService
	posts    *services.PostService
}

// NewCommentController creates a new CommentController.
func NewCommentController(sessions *session.Store, comments *services.CommentService, posts *services.PostService, basePath string) *CommentController {
	return &CommentController{
		base:     base{sessions: sessions, templates: loadTemplates(basePath)},
		comments: comments,
		posts:    posts,
	}
}

// Create validates and attaches a new comment to a post.
func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
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

	form := &models.CommentForm{Comment: r.FormValue("comment")}
	if msgs := form.Validate(); len(msgs) > 0 {
		page, err := c.posts.PostPage(r.Context(), postID, 1)
		if err != nil {
			c.fail(w, r, sess, err)
			return
		}
		for _, msg := range msgs {
			sess.AddFlash("error", msg)
		}
		c.render(w, sess, "post", map[string]any{
			"Post":         page.Post,
			"Comments":     page.Comments,
			"CommentsPage": page.CommentsPage,
			"PageCount":    page.PageCount,
		})
		return
	}

	if err := c.comments.PostComment(r.Context(), sess.Username, postID, form.Comment); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.AddFlash("success", "Comment posted.")
	c.redirect(w, r, sess, fmt.Sprintf("/posts/post/%d/comments/1", postID))
}

// EditPage renders the edit form for a comment. The comment's author and
// the post's owner are both allowed in.
func (c *CommentController) EditPage(w http.ResponseWriter, r *http.Request) {
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
	commentID, err := intVar(r, "commentId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	comment, err := c.comments.EditPage(r.Context(), sess.Username, postID, commentID)
	if err != nil {
		c.fail(w, r, sess, err)
		return
	}

	c.render(w, sess, "edit-comment", map[string]any{
		"Comment":      comment,
		"RedirectPath": sess.RedirectPath,
	})
}

// Update rewrites a comment's text under the two-owner rule.
func (c *CommentController) Update(w http.ResponseWriter, r *http.Request) {
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
	commentID, err := intVar(r, "commentId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	form := &models.CommentForm{Comment: r.FormValue("comment")}
	if msgs := form.Validate(); len(msgs) > 0 {
		comment, err := c.comments.EditPage(r.Context(), sess.Username, postID, commentID)
		if err != nil {
			c.fail(w, r, sess, err)
			return
		}
		for _, msg := range msgs {
			sess.AddFlash("error", msg)
		}
		comment.Comment = form.Comment
		c.render(w, sess, "edit-comment", map[string]any{
			"Comment":      comment,
			"RedirectPath": sess.RedirectPath,
		})
		return
	}

	if err := c.comments.UpdateComment(r.Context(), sess.Username, postID, commentID, form.Comment); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	sess.AddFlash("success", "Comment updated.")
	c.redirect(w, r, sess, c.returnPath(sess))
}

// Destroy deletes a comment under the two-owner rule.
func (c *CommentController) Destroy(w http.ResponseWriter, r *http.Request) {
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
	commentID, err := intVar(r, "commentId")
	if err != nil {
		c.redirectNotFound(w, r, sess)
		return
	}

	if err := c.comments.DeleteComment(r.Context(), sess.Username, postID, commentID); err != nil {
		c.fail(w, r, sess, err)
		return
	}

	target := c.returnPath(sess)
	sess.RedirectPath = ""
	sess.AddFlash("success", "Comment deleted.")
	c.redirect(w, r, sess, target)
}

// returnPath is where a comment mutation sends the visitor back to: the
// post page they came from, or the board when that is unknown.
func (c *CommentController) returnPath(sess *session.Session) string {
	if sess.RedirectPath != "" {
		return sess.RedirectPath
	}
	return "/posts/1"
}
