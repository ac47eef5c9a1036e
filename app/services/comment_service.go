package services

import (
	"context"

	"muse/app/models"
	"muse/app/repositories"
)

// CommentService handles comment mutations. Comments have two legitimate
// owners: the comment's author and the owner of the post it sits on.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
	}
}

// PostComment attaches a new comment by the acting user to a post.
func (s *CommentService) PostComment(ctx context.Context, actor string, postID int, text string) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.comments.Create(ctx, actor, postID, text)
}

// EditPage loads a comment for its edit form, gated on the two-owner rule.
func (s *CommentService) EditPage(ctx context.Context, actor string, postID, commentID int) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	owners, err := s.owners(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !IsAuthorized(actor, owners) {
		return nil, ErrUnauthorized
	}
	return comment, nil
}

// UpdateComment rewrites a comment's text. Either the comment's author or
// the post's owner may do this; the check runs before any mutating
// statement is issued.
func (s *CommentService) UpdateComment(ctx context.Context, actor string, postID, commentID int, text string) error {
	owners, err := s.owners(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !IsAuthorized(actor, owners) {
		return ErrUnauthorized
	}
	return s.comments.Update(ctx, commentID, text)
}

// DeleteComment removes a comment under the same two-owner rule.
func (s *CommentService) DeleteComment(ctx context.Context, actor string, postID, commentID int) error {
	owners, err := s.owners(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !IsAuthorized(actor, owners) {
		return ErrUnauthorized
	}
	return s.comments.Delete(ctx, commentID)
}

// owners assembles the owner candidate set for a comment: the parent post's
// owner first, then the comment's author. A missing resource contributes an
// empty name, which can never authorize anyone.
func (s *CommentService) owners(ctx context.Context, postID, commentID int) ([]string, error) {
	postOwner, err := ownerOrEmpty(s.posts.Owner(ctx, postID))
	if err != nil {
		return nil, err
	}
	commentOwner, err := ownerOrEmpty(s.comments.Owner(ctx, commentID))
	if err != nil {
		return nil, err
	}
	return []string{postOwner, commentOwner}, nil
}
