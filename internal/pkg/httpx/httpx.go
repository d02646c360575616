// Package httpx 构造出站 HTTP client：超时、代理、默认请求头统一在这里决定。
//
// 约束：不做重试。每个入站请求最多一次出站尝试。
package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// BrowserUserAgent 模拟桌面 Chrome，用于米游社接口
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	// SimpleUserAgent 用于图片源站与 stage 接口
	SimpleUserAgent = "Mozilla/5.0"
)

// Transport 为每个请求补齐默认请求头，调用方显式设置的值优先。
type Transport struct {
	Base    http.RoundTripper
	Headers http.Header
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if len(t.Headers) == 0 {
		return base.RoundTrip(req)
	}

	// Clone 避免修改调用方的 request
	r := req.Clone(req.Context())
	for k, vs := range t.Headers {
		if r.Header.Get(k) != "" {
			continue
		}
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	return base.RoundTrip(r)
}

// Options 描述一个出站 client
type Options struct {
	Timeout  time.Duration
	ProxyURL string
	Headers  map[string]string

	// Base 非空时直接使用（测试里替换为假 transport）；此时忽略 ProxyURL
	Base http.RoundTripper
}

// NewClient 按 Options 构造 client
func NewClient(opts Options) (*http.Client, error) {
	base := opts.Base
	if base == nil {
		tr, err := newBaseTransport(strings.TrimSpace(opts.ProxyURL))
		if err != nil {
			return nil, err
		}
		base = tr
	}

	headers := make(http.Header, len(opts.Headers))
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	return &http.Client{
		Transport: &Transport{Base: base, Headers: headers},
		Timeout:   opts.Timeout,
	}, nil
}

func newBaseTransport(proxyURL string) (*http.Transport, error) {
	base := &http.Transport{
		Proxy:                 nil,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
	}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("代理地址必须是绝对 URL: " + proxyURL)
		}
		base.Proxy = http.ProxyURL(u)
	}
	return base, nil
}

// IsTimeout 判断错误是否由超时引起
func IsTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
