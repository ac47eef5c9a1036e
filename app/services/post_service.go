package services

import (
	"context"
	"errors"
	"fmt"

	"muse/app/models"
	"muse/app/repositories"
)

// PostService handles board listing and ownership-gated post mutations.
type PostService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository) *PostService {
	return &PostService{
		posts:    posts,
		comments: comments,
		users:    users,
	}
}

// BoardPage is one window of the board plus the facts a view needs to
// render pagination controls.
type BoardPage struct {
	Posts      []models.Post
	PageNumber int
	PageCount  int
}

// PostPage is one post together with a window of its comments.
type PostPage struct {
	Post         *models.Post
	Comments     []models.Comment
	CommentsPage int
	PageCount    int
}

// BoardPage loads the requested page of the board. A page number outside
// 1..PageCount reads as ErrNotFound; the repositories never range-check.
func (s *PostService) BoardPage(ctx context.Context, page int) (*BoardPage, error) {
	if page < 1 {
		return nil, repositories.ErrNotFound
	}

	posts, err := s.posts.ListPage(ctx, page)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.PageCount(ctx)
	if err != nil {
		return nil, err
	}
	if page > count {
		return nil, repositories.ErrNotFound
	}

	return &BoardPage{Posts: posts, PageNumber: page, PageCount: count}, nil
}

// PostPage loads one post and the requested page of its comments.
func (s *PostService) PostPage(ctx context.Context, postID, commentsPage int) (*PostPage, error) {
	if commentsPage < 1 {
		return nil, repositories.ErrNotFound
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListPage(ctx, postID, commentsPage)
	if err != nil {
		return nil, err
	}
	count, err := s.comments.PageCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	if commentsPage > count {
		return nil, repositories.ErrNotFound
	}

	return &PostPage{Post: post, Comments: comments, CommentsPage: commentsPage, PageCount: count}, nil
}

// EditPage loads a post page for its edit form. Only the post's owner may
// see it.
func (s *PostService) EditPage(ctx context.Context, actor string, postID, commentsPage int) (*PostPage, error) {
	page, err := s.PostPage(ctx, postID, commentsPage)
	if err != nil {
		return nil, err
	}
	if !IsAuthorized(actor, []string{page.Post.Username}) {
		return nil, ErrUnauthorized
	}
	return page, nil
}

// UserPosts loads every post by one user, newest first. An unknown username
// is ErrNotFound; a known user with no posts is an empty, valid page.
func (s *PostService) UserPosts(ctx context.Context, username string) ([]models.Post, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repositories.ErrNotFound
	}

	posts, err := s.posts.ListByUser(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost inserts a new post owned by the acting user.
func (s *PostService) CreatePost(ctx context.Context, actor string, form *models.PostForm) error {
	post := &models.Post{
		Title:       form.Title,
		Description: form.Description,
		Song:        form.Song,
		Artist:      form.Artist,
	}
	if err := s.posts.Create(ctx, actor, post); err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	return nil
}

// UpdatePost rewrites a post's fields after confirming the acting user owns
// it. The ownership check runs before any mutating statement is issued.
func (s *PostService) UpdatePost(ctx context.Context, actor string, postID int, form *models.PostForm) error {
	owner, err := ownerOrEmpty(s.posts.Owner(ctx, postID))
	if err != nil {
		return err
	}
	if !IsAuthorized(actor, []string{owner}) {
		return ErrUnauthorized
	}

	post := &models.Post{
		ID:          postID,
		Title:       form.Title,
		Description: form.Description,
		Song:        form.Song,
		Artist:      form.Artist,
	}
	return s.posts.Update(ctx, actor, post)
}

// DeletePost removes a post after confirming the acting user owns it.
func (s *PostService) DeletePost(ctx context.Context, actor string, postID int) error {
	owner, err := ownerOrEmpty(s.posts.Owner(ctx, postID))
	if err != nil {
		return err
	}
	if !IsAuthorized(actor, []string{owner}) {
		return ErrUnauthorized
	}
	return s.posts.Delete(ctx, postID)
}

// ownerOrEmpty folds a missing resource into an empty owner name, which can
// never match an authenticated username, so the caller's authorization
// check rejects it.
func ownerOrEmpty(owner string, err error) (string, error) {
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return owner, nil
}
