package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryListPage(t *testing.T) {
	t.Run("windows by four with username tie-break", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery("FROM comments JOIN users ON comments.user_id = users.id WHERE .+ LIMIT 4 OFFSET 4").
			WithArgs(3).
			WillReturnRows(mock.NewRows([]string{"id", "username", "comment", "created"}).
				AddRow(5, "bob", "fifth comment", now))

		repo := NewPgCommentRepository(mock)
		comments, err := repo.ListPage(context.Background(), 3, 2)
		assert.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "fifth comment", comments[0].Comment)
		assert.Equal(t, "bob", comments[0].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepositoryPageCount(t *testing.T) {
	t.Run("a post with no comments still has one page", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT count").
			WithArgs(3).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))

		repo := NewPgCommentRepository(mock)
		count, err := repo.PageCount(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("five comments fill two pages", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT count").
			WithArgs(3).
			WillReturnRows(mock.NewRows([]string{"count"}).AddRow(5))

		repo := NewPgCommentRepository(mock)
		count, err := repo.PageCount(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("malformed post id reads as not found rather than raising", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT count").
			WithArgs(0).
			WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type integer"})

		repo := NewPgCommentRepository(mock)
		_, err = repo.PageCount(context.Background(), 0)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCommentRepositoryGetByID(t *testing.T) {
	t.Run("loads the comment with its author joined in", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery("FROM comments").
			WithArgs(5).
			WillReturnRows(mock.NewRows([]string{"id", "user_id", "post_id", "username", "comment", "created"}).
				AddRow(5, 8, 3, "bob", "nice track", now))

		repo := NewPgCommentRepository(mock)
		comment, err := repo.GetByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.Equal(t, 3, comment.PostID)
		assert.Equal(t, "nice track", comment.Comment)
	})

	t.Run("missing comment reads as not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("FROM comments").
			WithArgs(404).
			WillReturnRows(mock.NewRows([]string{"id", "user_id", "post_id", "username", "comment", "created"}))

		repo := NewPgCommentRepository(mock)
		_, err = repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCommentRepositoryCreate(t *testing.T) {
	t.Run("resolves the actor and inserts inside one transaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM users").
			WithArgs("bob").
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(8))
		mock.ExpectExec("INSERT INTO comments").
			WithArgs(8, 3, "nice track").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := NewPgCommentRepository(mock)
		err = repo.Create(context.Background(), "bob", 3, "nice track")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepositoryUpdate(t *testing.T) {
	t.Run("matches on id alone", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE comments").
			WithArgs(5, "edited").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewPgCommentRepository(mock)
		assert.NoError(t, repo.Update(context.Background(), 5, "edited"))
	})

	t.Run("missing comment reads as not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE comments").
			WithArgs(404, "edited").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewPgCommentRepository(mock)
		assert.ErrorIs(t, repo.Update(context.Background(), 404, "edited"), ErrNotFound)
	})
}

func TestCommentRepositoryDelete(t *testing.T) {
	t.Run("deleting an absent id reads as not found, never raises", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM comments").
			WithArgs(404).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewPgCommentRepository(mock)
		assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrNotFound)
	})
}
