package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// CommentDoc ES 评论文档结构
type CommentDoc struct {
	ID        int64  `json:"id"`
	VideoID   int64  `json:"video_id"`
	OwnerID   int64  `json:"owner_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SearchResult 命中的评论 ID（按相关度、时间排序）及总数
type SearchResult struct {
	IDs   []int64
	Total int64
}

func commentToDoc(c *model.Comment) *CommentDoc {
	return &CommentDoc{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// IndexComment 写入或覆盖单条评论
func (c *Client) IndexComment(ctx context.Context, comment *model.Comment) error {
	body, err := json.Marshal(commentToDoc(comment))
	if err != nil {
		return err
	}

	resp, err := c.indexDoc(ctx, strconv.FormatInt(comment.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Comment synced to ES", zap.Int64("comment_id", comment.ID))
	return nil
}

// DeleteComment 删除评论文档，不存在视为成功
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	resp, err := c.deleteDoc(ctx, strconv.FormatInt(commentID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkIndexComments 批量同步评论到 ES
func (c *Client) BulkIndexComments(ctx context.Context, comments []model.Comment) (success, failed int, err error) {
	if len(comments) == 0 {
		return 0, 0, nil
	}

	var buf strings.Builder
	for i := range comments {
		doc, _ := json.Marshal(commentToDoc(&comments[i]))
		fmt.Fprintf(&buf, `{"index":{"_id":"%d"}}`, comments[i].ID)
		buf.WriteString("\n")
		buf.Write(doc)
		buf.WriteString("\n")
	}

	resp, err := c.bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(comments), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(comments), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Items []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(comments), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

// SearchComments 全文检索评论，videoID 不为 nil 时限定视频
func (c *Client) SearchComments(ctx context.Context, q string, videoID *int64, from, size int) (*SearchResult, error) {
	body, err := buildSearchQuery(q, videoID, from, size)
	if err != nil {
		return nil, err
	}

	resp, err := c.search(ctx, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("search failed: %s", resp.String())
	}
	return parseSearchResponse(resp.Body)
}

func buildSearchQuery(q string, videoID *int64, from, size int) ([]byte, error) {
	filter := []map[string]any{}
	if videoID != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"video_id": *videoID}})
	}

	query := map[string]any{
		"from":    from,
		"size":    size,
		"_source": []string{"id"},
		"query": map[string]any{
			"bool": map[string]any{
				"must":   []map[string]any{{"match": map[string]any{"content": map[string]any{"query": q, "operator": "and"}}}},
				"filter": filter,
			},
		},
		"sort": []any{"_score", map[string]any{"created_at": "desc"}, map[string]any{"id": "desc"}},
	}
	return json.Marshal(query)
}

func parseSearchResponse(r io.Reader) (*SearchResult, error) {
	var body struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &SearchResult{Total: body.Hits.Total.Value, IDs: make([]int64, 0, len(body.Hits.Hits))}
	for _, h := range body.Hits.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		result.IDs = append(result.IDs, id)
	}
	return result, nil
}
