package repositories

import (
	"context"

	"muse/app/models"
)

// UserRepository defines the interface for user lookups and credential checks.
type UserRepository interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
	UserID(ctx context.Context, username string) (int, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	ListPage(ctx context.Context, page int) ([]models.Post, error)
	ListByUser(ctx context.Context, username string) ([]models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	PageCount(ctx context.Context) (int, error)
	Owner(ctx context.Context, id int) (string, error)
	Create(ctx context.Context, username string, post *models.Post) error
	Update(ctx context.Context, username string, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	ListPage(ctx context.Context, postID, page int) ([]models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	PageCount(ctx context.Context, postID int) (int, error)
	Owner(ctx context.Context, id int) (string, error)
	Create(ctx context.Context, username string, postID int, text string) error
	Update(ctx context.Context, id int, text string) error
	Delete(ctx context.Context, id int) error
}
