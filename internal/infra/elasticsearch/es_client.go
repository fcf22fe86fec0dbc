package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// Client 对官方客户端的薄封装，绑定索引名
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New 创建 Elasticsearch 客户端并 Ping
func New(cfg *config.ElasticsearchConfig) (*Client, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	index := cfg.IndexName("comments", "comments")
	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts), zap.String("index", index))
	return &Client{es: es, index: index}, nil
}

func (c *Client) Index() string {
	return c.index
}

func (c *Client) search(ctx context.Context, body io.Reader) (*esapi.Response, error) {
	return c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(body),
		c.es.Search.WithTrackTotalHits(true),
	)
}

func (c *Client) indexDoc(ctx context.Context, id string, body io.Reader) (*esapi.Response, error) {
	return c.es.Index(
		c.index,
		body,
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(id),
	)
}

func (c *Client) deleteDoc(ctx context.Context, id string) (*esapi.Response, error) {
	return c.es.Delete(
		c.index,
		id,
		c.es.Delete.WithContext(ctx),
	)
}

func (c *Client) bulk(ctx context.Context, body io.Reader) (*esapi.Response, error) {
	return c.es.Bulk(
		body,
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(c.index),
	)
}
