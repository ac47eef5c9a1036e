package services

import (
	"context"

	"muse/app/models"
	"muse/app/repositories"
)

// In-memory stand-ins for the repositories. Mutation counters let tests
// assert that authorization rejections happen before any statement would
// touch the store.

type mockPostRepo struct {
	posts     map[int]*models.Post
	byUser    map[string][]models.Post
	pages     map[int][]models.Post
	pageCount int

	createCalls int
	updateCalls int
	deleteCalls int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{
		posts:     make(map[int]*models.Post),
		byUser:    make(map[string][]models.Post),
		pages:     make(map[int][]models.Post),
		pageCount: 1,
	}
}

func (m *mockPostRepo) ListPage(_ context.Context, page int) ([]models.Post, error) {
	return m.pages[page], nil
}

func (m *mockPostRepo) ListByUser(_ context.Context, username string) ([]models.Post, error) {
	posts, ok := m.byUser[username]
	if !ok || len(posts) == 0 {
		return nil, repositories.ErrNotFound
	}
	return posts, nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id int) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *mockPostRepo) PageCount(_ context.Context) (int, error) {
	return m.pageCount, nil
}

func (m *mockPostRepo) Owner(_ context.Context, id int) (string, error) {
	post, ok := m.posts[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return post.Username, nil
}

func (m *mockPostRepo) Create(_ context.Context, username string, post *models.Post) error {
	m.createCalls++
	post.Username = username
	m.posts[len(m.posts)+1] = post
	return nil
}

func (m *mockPostRepo) Update(_ context.Context, username string, post *models.Post) error {
	m.updateCalls++
	existing, ok := m.posts[post.ID]
	if !ok || existing.Username != username {
		return repositories.ErrNotFound
	}
	post.Username = existing.Username
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id int) error {
	m.deleteCalls++
	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type mockCommentRepo struct {
	comments  map[int]*models.Comment
	pages     map[int][]models.Comment
	pageCount int

	createCalls int
	updateCalls int
	deleteCalls int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{
		comments:  make(map[int]*models.Comment),
		pages:     make(map[int][]models.Comment),
		pageCount: 1,
	}
}

func (m *mockCommentRepo) ListPage(_ context.Context, postID, page int) ([]models.Comment, error) {
	return m.pages[page], nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int) (*models.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *mockCommentRepo) PageCount(_ context.Context, postID int) (int, error) {
	return m.pageCount, nil
}

func (m *mockCommentRepo) Owner(_ context.Context, id int) (string, error) {
	comment, ok := m.comments[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return comment.Username, nil
}

func (m *mockCommentRepo) Create(_ context.Context, username string, postID int, text string) error {
	m.createCalls++
	id := len(m.comments) + 1
	m.comments[id] = &models.Comment{ID: id, PostID: postID, Username: username, Comment: text}
	return nil
}

func (m *mockCommentRepo) Update(_ context.Context, id int, text string) error {
	m.updateCalls++
	comment, ok := m.comments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.Comment = text
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int) error {
	m.deleteCalls++
	if _, ok := m.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type mockUserRepo struct {
	users map[string]string // username -> password
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]string)}
}

func (m *mockUserRepo) Authenticate(_ context.Context, username, password string) (bool, error) {
	stored, ok := m.users[username]
	return ok && stored == password, nil
}

func (m *mockUserRepo) UserID(_ context.Context, username string) (int, error) {
	if _, ok := m.users[username]; !ok {
		return 0, repositories.ErrNotFound
	}
	return 1, nil
}

func (m *mockUserRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}
