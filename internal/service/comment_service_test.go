package service_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"vidtube-go/internal/api/dto"
	"vidtube-go/internal/infra/elasticsearch"
	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentDeps struct {
	comments *mocks.CommentStore
	videos   *mocks.VideoStore
	events   *mocks.Publisher
	searcher *mocks.CommentSearcher
	svc      *service.CommentService
}

func newCommentDeps() *commentDeps {
	d := &commentDeps{
		comments: new(mocks.CommentStore),
		videos:   new(mocks.VideoStore),
		events:   new(mocks.Publisher),
		searcher: new(mocks.CommentSearcher),
	}
	d.svc = service.NewCommentService(d.comments, d.videos, d.events, d.searcher)
	return d
}

func TestListComments_VideoMissing(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(false, nil)

	_, err := d.svc.List(context.Background(), 1, 5, &dto.PageQuery{})
	requireAppErr(t, err, http.StatusNotFound, "Video not found")
}

func TestListComments_DefaultsAndPaging(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("ListByVideoWithStats", mock.Anything, int64(1), int64(5), 0, 10).Return([]repository.CommentRow{
		{ID: 3, Content: "c", VideoID: 1, OwnerID: 8, OwnerUsername: "u", LikesCount: 2, IsLiked: true},
	}, int64(25), nil)

	data, err := d.svc.List(context.Background(), 1, 5, &dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, data.Page)
	assert.Equal(t, 10, data.Limit)
	assert.Equal(t, 3, data.TotalPages)
	assert.False(t, data.HasPrevPage)
	assert.True(t, data.HasNextPage)
	assert.Nil(t, data.PrevPage)
	require.NotNil(t, data.NextPage)
	assert.Equal(t, 2, *data.NextPage)
	require.Len(t, data.Comments, 1)
	assert.Equal(t, int64(2), data.Comments[0].LikesCount)
	assert.True(t, data.Comments[0].IsLiked)
	assert.Equal(t, "u", data.Comments[0].Owner.Username)
}

func TestListComments_LastPageAndLimitCap(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("ListByVideoWithStats", mock.Anything, int64(1), int64(5), 100, 100).
		Return([]repository.CommentRow{}, int64(150), nil)

	data, err := d.svc.List(context.Background(), 1, 5, &dto.PageQuery{Page: 2, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, data.Limit)
	assert.Equal(t, 2, data.TotalPages)
	assert.True(t, data.HasPrevPage)
	assert.False(t, data.HasNextPage)
	assert.Equal(t, 1, *data.PrevPage)
	assert.NotNil(t, data.Comments)
}

func TestListComments_Empty(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("ListByVideoWithStats", mock.Anything, int64(1), int64(5), 0, 10).
		Return([]repository.CommentRow{}, int64(0), nil)

	data, err := d.svc.List(context.Background(), 1, 5, &dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, data.TotalPages)
	assert.False(t, data.HasNextPage)
	assert.Empty(t, data.Comments)
}

func TestAddComment(t *testing.T) {
	d := newCommentDeps()
	ctx := context.Background()

	_, err := d.svc.Add(ctx, 1, 5, "   ")
	requireAppErr(t, err, http.StatusBadRequest, "Content is required")

	d.videos.On("Exists", mock.Anything, int64(2)).Return(false, nil)
	_, err = d.svc.Add(ctx, 2, 5, "hi")
	requireAppErr(t, err, http.StatusNotFound, "Video not found")

	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.Content == "hi" && c.VideoID == 1 && c.OwnerID == 5
	})).Run(func(args mock.Arguments) {
		c := args.Get(1).(*model.Comment)
		c.ID = 10
		c.CreatedAt = time.Now()
	}).Return(nil)
	d.events.On("PublishCommentEvent", mock.Anything, mock.MatchedBy(func(ev *kafka.CommentEvent) bool {
		return ev.Action == kafka.CommentUpserted && ev.CommentID == 10 && ev.Content == "hi"
	})).Return(errors.New("broker down"))

	data, err := d.svc.Add(ctx, 1, 5, " hi ")
	require.NoError(t, err)
	assert.Equal(t, int64(10), data.ID)
	assert.Equal(t, int64(5), data.Owner)
	d.events.AssertExpectations(t)
}

func TestAddComment_CreateFails(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := d.svc.Add(context.Background(), 1, 5, "hi")
	requireAppErr(t, err, http.StatusInternalServerError, "Failed to add comment please try again")
}

func TestUpdateComment(t *testing.T) {
	d := newCommentDeps()
	ctx := context.Background()

	d.comments.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)
	_, err := d.svc.Update(ctx, 404, 5, "x")
	requireAppErr(t, err, http.StatusNotFound, "Comment not found")

	d.comments.On("GetByID", mock.Anything, int64(7)).Return(&model.Comment{ID: 7, OwnerID: 9, VideoID: 1}, nil)
	_, err = d.svc.Update(ctx, 7, 5, "x")
	requireAppErr(t, err, http.StatusBadRequest, "Only comment owner can edit their comment")

	d.comments.On("UpdateContent", mock.Anything, int64(7), "edited").
		Return(&model.Comment{ID: 7, OwnerID: 9, VideoID: 1, Content: "edited"}, nil)
	d.events.On("PublishCommentEvent", mock.Anything, mock.Anything).Return(nil)
	data, err := d.svc.Update(ctx, 7, 9, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", data.Content)
}

func TestDeleteComment(t *testing.T) {
	d := newCommentDeps()
	ctx := context.Background()

	d.comments.On("GetByID", mock.Anything, int64(7)).Return(&model.Comment{ID: 7, OwnerID: 9, VideoID: 1}, nil)
	_, err := d.svc.Delete(ctx, 7, 5)
	requireAppErr(t, err, http.StatusBadRequest, "Only comment owner can delete their comment")
	d.comments.AssertNotCalled(t, "DeleteWithLikes", mock.Anything, mock.Anything)

	d.comments.On("DeleteWithLikes", mock.Anything, int64(7)).Return(nil)
	d.events.On("PublishCommentEvent", mock.Anything, mock.MatchedBy(func(ev *kafka.CommentEvent) bool {
		return ev.Action == kafka.CommentDeleted && ev.CommentID == 7 && ev.Content == ""
	})).Return(nil)

	data, err := d.svc.Delete(ctx, 7, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.CommentID)
	d.events.AssertExpectations(t)
}

func TestDeleteComment_ConcurrentDelete(t *testing.T) {
	d := newCommentDeps()
	d.comments.On("GetByID", mock.Anything, int64(7)).Return(&model.Comment{ID: 7, OwnerID: 9}, nil)
	d.comments.On("DeleteWithLikes", mock.Anything, int64(7)).Return(gorm.ErrRecordNotFound)

	_, err := d.svc.Delete(context.Background(), 7, 9)
	requireAppErr(t, err, http.StatusNotFound, "Comment not found")
}

func TestSearchComments_RequiresQuery(t *testing.T) {
	d := newCommentDeps()
	_, err := d.svc.Search(context.Background(), 1, &dto.SearchCommentsQuery{Q: " "})
	requireAppErr(t, err, http.StatusBadRequest, "Search query is required")
}

func TestSearchComments_FromESKeepsHitOrder(t *testing.T) {
	d := newCommentDeps()
	d.searcher.On("SearchComments", mock.Anything, "nice", (*int64)(nil), 0, 10).
		Return(&elasticsearch.SearchResult{IDs: []int64{3, 1, 2}, Total: 3}, nil)
	d.comments.On("GetRowsByIDs", mock.Anything, []int64{3, 1, 2}, int64(1)).Return([]repository.CommentRow{
		{ID: 1}, {ID: 3},
	}, nil)

	data, err := d.svc.Search(context.Background(), 1, &dto.SearchCommentsQuery{Q: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", data.Source)
	require.Len(t, data.Comments, 2)
	assert.Equal(t, int64(3), data.Comments[0].ID)
	assert.Equal(t, int64(1), data.Comments[1].ID)
}

func TestSearchComments_FallsBackToDB(t *testing.T) {
	d := newCommentDeps()
	videoID := int64(4)
	d.searcher.On("SearchComments", mock.Anything, "nice", &videoID, 10, 10).Return(nil, errors.New("es down"))
	d.comments.On("SearchByContent", mock.Anything, "nice", &videoID, int64(1), 10, 10).
		Return([]repository.CommentRow{{ID: 5}}, int64(11), nil)

	data, err := d.svc.Search(context.Background(), 1, &dto.SearchCommentsQuery{Q: "nice", VideoID: &videoID, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
	assert.Equal(t, 2, data.TotalPages)
	assert.Equal(t, int64(11), data.Total)
}

func TestSearchComments_WithoutSearcher(t *testing.T) {
	comments := new(mocks.CommentStore)
	svc := service.NewCommentService(comments, new(mocks.VideoStore), nil, nil)
	comments.On("SearchByContent", mock.Anything, "x", (*int64)(nil), int64(1), 0, 10).
		Return([]repository.CommentRow{}, int64(0), nil)

	data, err := svc.Search(context.Background(), 1, &dto.SearchCommentsQuery{Q: "x"})
	require.NoError(t, err)
	assert.Equal(t, "database", data.Source)
}

func TestListComments_HugePageKeepsOffsetPositive(t *testing.T) {
	d := newCommentDeps()
	d.videos.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	d.comments.On("ListByVideoWithStats", mock.Anything, int64(1), int64(5), 999990, 10).
		Return([]repository.CommentRow{}, int64(3), nil)

	data, err := d.svc.List(context.Background(), 1, 5, &dto.PageQuery{Page: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 100000, data.Page)
	assert.Empty(t, data.Comments)
	assert.False(t, data.HasNextPage)
}

func TestSearchComments_HugePageKeepsOffsetPositive(t *testing.T) {
	d := newCommentDeps()
	svc := service.NewCommentService(d.comments, d.videos, nil, nil)
	d.comments.On("SearchByContent", mock.Anything, "hi", (*int64)(nil), int64(5), 9999900, 100).
		Return([]repository.CommentRow{}, int64(0), nil)

	data, err := svc.Search(context.Background(), 5, &dto.SearchCommentsQuery{Q: "hi", Page: math.MaxInt, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100000, data.Page)
	d.comments.AssertExpectations(t)
}
