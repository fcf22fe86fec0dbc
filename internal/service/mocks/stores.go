package mocks

import (
	"context"

	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"

	"github.com/stretchr/testify/mock"
)

// UserStore mock
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *UserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}
func (m *UserStore) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}
func (m *UserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *UserStore) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}
func (m *UserStore) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}
func (m *UserStore) ReplaceRefreshToken(ctx context.Context, id int64, old, next string) (bool, error) {
	args := m.Called(ctx, id, old, next)
	return args.Bool(0), args.Error(1)
}
func (m *UserStore) GetChannelProfile(ctx context.Context, username string, viewerID int64) (*repository.ChannelProfileRow, error) {
	args := m.Called(ctx, username, viewerID)
	row, _ := args.Get(0).(*repository.ChannelProfileRow)
	return row, args.Error(1)
}
func (m *UserStore) ListWatchHistory(ctx context.Context, userID int64) ([]repository.WatchHistoryRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]repository.WatchHistoryRow)
	return rows, args.Error(1)
}

// VideoStore mock
type VideoStore struct {
	mock.Mock
}

func (m *VideoStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// CommentStore mock
type CommentStore struct {
	mock.Mock
}

func (m *CommentStore) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}
func (m *CommentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}
func (m *CommentStore) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	args := m.Called(ctx, id, content)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}
func (m *CommentStore) DeleteWithLikes(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *CommentStore) ListByVideoWithStats(ctx context.Context, videoID, viewerID int64, offset, limit int) ([]repository.CommentRow, int64, error) {
	args := m.Called(ctx, videoID, viewerID, offset, limit)
	rows, _ := args.Get(0).([]repository.CommentRow)
	return rows, args.Get(1).(int64), args.Error(2)
}
func (m *CommentStore) GetRowsByIDs(ctx context.Context, ids []int64, viewerID int64) ([]repository.CommentRow, error) {
	args := m.Called(ctx, ids, viewerID)
	rows, _ := args.Get(0).([]repository.CommentRow)
	return rows, args.Error(1)
}
func (m *CommentStore) SearchByContent(ctx context.Context, q string, videoID *int64, viewerID int64, offset, limit int) ([]repository.CommentRow, int64, error) {
	args := m.Called(ctx, q, videoID, viewerID, offset, limit)
	rows, _ := args.Get(0).([]repository.CommentRow)
	return rows, args.Get(1).(int64), args.Error(2)
}
