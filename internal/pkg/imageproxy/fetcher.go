// Package imageproxy 负责从源站拉取图片。
package imageproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultContentType 在源站未返回 Content-Type 时使用
const DefaultContentType = "image/png"

// DefaultMaxBytes 单张图片的上限
const DefaultMaxBytes int64 = 20 << 20

// ErrTooLarge 表示图片超过上限
var ErrTooLarge = errors.New("图片超过大小上限")

// StatusError 表示源站返回了非 2xx
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("源站返回 HTTP %d", e.StatusCode)
}

// Image 是一次完整拉取的结果
type Image struct {
	Body        []byte
	ContentType string
}

// Fetcher 拉取图片。client 由调用方按配置构造（超时、UA、代理）。
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher 创建图片拉取器；maxBytes<=0 时使用默认上限
func NewFetcher(client *http.Client, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch 发起一次 GET，成功时完整读入响应体后返回。
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 读掉少量内容以便连接复用，内容本身不外泄
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &StatusError{URL: imageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrTooLarge
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &Image{Body: body, ContentType: contentType}, nil
}
