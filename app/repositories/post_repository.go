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

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var postColumns = []string{
	"posts.id",
	"posts.user_id",
	"users.username",
	"posts.title",
	"posts.description",
	"posts.song",
	"posts.artist",
	"posts.created",
}

const (
	insertPost = `
	INSERT INTO posts (user_id, title, description, song, artist)
	VALUES ($1, $2, $3, $4, $5)`

	updatePost = `
	UPDATE posts
	SET title = $2, description = $3, song = $4, artist = $5
	WHERE id = $1 AND user_id = $6`

	deletePost = `DELETE FROM posts WHERE id = $1`

	countPosts = `SELECT count(id) FROM posts`

	selectPostOwner = `
	SELECT users.username
	FROM users
	JOIN posts ON users.id = posts.user_id
	WHERE posts.id = $1`
)

// PgPostRepository implements PostRepository on PostgreSQL.
type PgPostRepository struct {
	db DB
}

// NewPgPostRepository creates a new PgPostRepository.
func NewPgPostRepository(db DB) *PgPostRepository {
	return &PgPostRepository{db: db}
}

// ListPage loads one window of the board, newest first with titles breaking
// ties. A page past the end of the board comes back empty, not as an error.
func (r *PgPostRepository) ListPage(ctx context.Context, page int) ([]models.Post, error) {
	sql, args, err := psql.Select(postColumns...).
		From("posts").
		Join("users ON posts.user_id = users.id").
		OrderBy("posts.created DESC", "posts.title ASC").
		Limit(PostsPerPage).
		Offset(uint64(Offset(page, PostsPerPage))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building posts query: %w", err)
	}

	var posts []models.Post
	if err := pgxscan.Select(ctx, r.db, &posts, sql, args...); err != nil {
		return nil, classify("loading posts", err)
	}
	return posts, nil
}

// ListByUser loads every post belonging to one owner, same ordering as the
// board, no windowing. An owner with zero posts reads as ErrNotFound.
func (r *PgPostRepository) ListByUser(ctx context.Context, username string) ([]models.Post, error) {
	userID, err := resolveUserID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	sql, args, err := psql.Select(postColumns...).
		From("posts").
		Join("users ON posts.user_id = users.id").
		Where(squirrel.Eq{"posts.user_id": userID}).
		OrderBy("posts.created DESC", "posts.title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user posts query: %w", err)
	}

	var posts []models.Post
	if err := pgxscan.Select(ctx, r.db, &posts, sql, args...); err != nil {
		return nil, classify("loading user posts", err)
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts, nil
}

// GetByID loads one post with its owner's username joined in. Anything other
// than exactly one matching row reads as ErrNotFound.
func (r *PgPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	sql, args, err := psql.Select(postColumns...).
		From("posts").
		Join("users ON posts.user_id = users.id").
		Where(squirrel.Eq{"posts.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building post query: %w", err)
	}

	var posts []models.Post
	if err := pgxscan.Select(ctx, r.db, &posts, sql, args...); err != nil {
		return nil, classify("loading post", err)
	}
	if len(posts) != 1 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

// PageCount returns how many board pages exist. An empty board still has one.
func (r *PgPostRepository) PageCount(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, countPosts).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return PageCount(total, PostsPerPage), nil
}

// Owner resolves the username of the post's author.
func (r *PgPostRepository) Owner(ctx context.Context, id int) (string, error) {
	var username string
	if err := r.db.QueryRow(ctx, selectPostOwner, id).Scan(&username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", classify("resolving post owner", err)
	}
	return username, nil
}

// Create resolves the acting user's id and inserts the post, both inside one
// transaction so a concurrent change to the user cannot split the write.
func (r *PgPostRepository) Create(ctx context.Context, username string, post *models.Post) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID, err := resolveUserID(ctx, tx, username)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, insertPost, userID, post.Title, post.Description, post.Song, post.Artist)
	if err != nil {
		return classify("inserting post", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// Update rewrites the post's fields. The statement re-checks ownership in
// its WHERE clause, so even a caller that skipped authorization cannot touch
// another user's post.
func (r *PgPostRepository) Update(ctx context.Context, username string, post *models.Post) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID, err := resolveUserID(ctx, tx, username)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, updatePost, post.ID, post.Title, post.Description, post.Song, post.Artist, userID)
	if err != nil {
		return classify("updating post", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes the post. Deleting an absent id reads as ErrNotFound,
// never as a raised failure.
func (r *PgPostRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, deletePost, id)
	if err != nil {
		return classify("deleting post", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}
