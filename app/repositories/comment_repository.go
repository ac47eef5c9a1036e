package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"muse/app/models"
)

const (
	selectComment = `
	SELECT comments.id, comments.user_id, comments.post_id, users.username,
	       comments.comment, comments.created
	FROM comments
	JOIN users ON comments.user_id = users.id
	WHERE comments.id = $1`

	insertComment = `
	INSERT INTO comments (user_id, post_id, comment)
	VALUES ($1, $2, $3)`

	updateComment = `
	UPDATE comments
	SET comment = $2
	WHERE id = $1`

	deleteComment = `DELETE FROM comments WHERE id = $1`

	countPostComments = `SELECT count(id) FROM comments WHERE post_id = $1`

	selectCommentOwner = `
	SELECT users.username
	FROM users
	JOIN comments ON users.id = comments.user_id
	WHERE comments.id = $1`
)

// PgCommentRepository implements CommentRepository on PostgreSQL.
type PgCommentRepository struct {
	db DB
}

// NewPgCommentRepository creates a new PgCommentRepository.
func NewPgCommentRepository(db DB) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// ListPage loads one window of a post's comments, newest first with
// commenter usernames breaking ties.
func (r *PgCommentRepository) ListPage(ctx context.Context, postID, page int) ([]models.Comment, error) {
	sql, args, err := psql.Select("comments.id", "users.username", "comments.comment", "comments.created").
		From("comments").
		Join("users ON comments.user_id = users.id").
		Where(squirrel.Eq{"comments.post_id": postID}).
		OrderBy("comments.created DESC", "users.username ASC").
		Limit(CommentsPerPage).
		Offset(uint64(Offset(page, CommentsPerPage))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building comments query: %w", err)
	}

	var comments []models.Comment
	if err := pgxscan.Select(ctx, r.db, &comments, sql, args...); err != nil {
		return nil, classify("loading comments", err)
	}
	return comments, nil
}

// GetByID loads one comment with its author's username joined in.
func (r *PgCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.QueryRow(ctx, selectComment, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PostID,
		&comment.Username,
		&comment.Comment,
		&comment.Created,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("loading comment", err)
	}
	return &comment, nil
}

// PageCount returns how many comment pages the post has. A post with no
// comments still has one.
func (r *PgCommentRepository) PageCount(ctx context.Context, postID int) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, countPostComments, postID).Scan(&total); err != nil {
		return 0, classify("counting comments", err)
	}
	return PageCount(total, CommentsPerPage), nil
}

// Owner resolves the username of the comment's author.
func (r *PgCommentRepository) Owner(ctx context.Context, id int) (string, error) {
	var username string
	if err := r.db.QueryRow(ctx, selectCommentOwner, id).Scan(&username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", classify("resolving comment owner", err)
	}
	return username, nil
}

// Create resolves the acting user's id and inserts the comment inside one
// transaction.
func (r *PgCommentRepository) Create(ctx context.Context, username string, postID int, text string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID, err := resolveUserID(ctx, tx, username)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, insertComment, userID, postID, text)
	if err != nil {
		return classify("inserting comment", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// Update rewrites the comment text. Unlike posts, the statement matches on
// id alone; either the comment's author or the post's owner may get here,
// so the caller's authorization check is the gate.
func (r *PgCommentRepository) Update(ctx context.Context, id int, text string) error {
	tag, err := r.db.Exec(ctx, updateComment, id, text)
	if err != nil {
		return classify("updating comment", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the comment. Deleting an absent id reads as ErrNotFound.
func (r *PgCommentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, deleteComment, id)
	if err != nil {
		return classify("deleting comment", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}
