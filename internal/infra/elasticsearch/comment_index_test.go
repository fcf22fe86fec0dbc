package elasticsearch

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vidtube-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQueryWithVideoFilter(t *testing.T) {
	videoID := int64(9)
	raw, err := buildSearchQuery("nice", &videoID, 20, 10)
	require.NoError(t, err)

	var q map[string]any
	require.NoError(t, json.Unmarshal(raw, &q))
	assert.EqualValues(t, 20, q["from"])
	assert.EqualValues(t, 10, q["size"])

	filter := q["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
	require.Len(t, filter, 1)
	assert.EqualValues(t, 9, filter[0].(map[string]any)["term"].(map[string]any)["video_id"])
}

func TestBuildSearchQueryWithoutVideoFilter(t *testing.T) {
	raw, err := buildSearchQuery("nice", nil, 0, 10)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"filter":[]`)
}

func TestParseSearchResponse(t *testing.T) {
	body := `{"hits":{"total":{"value":3,"relation":"eq"},"hits":[{"_id":"5"},{"_id":"x"},{"_id":"2"}]}}`
	res, err := parseSearchResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, []int64{5, 2}, res.IDs)
}

func TestCommentToDoc(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := commentToDoc(&model.Comment{ID: 1, VideoID: 2, OwnerID: 3, Content: "hi", CreatedAt: ts, UpdatedAt: ts})
	assert.Equal(t, "2024-05-01T12:00:00Z", doc.CreatedAt)
	assert.Equal(t, "hi", doc.Content)
}
