package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordingTransport struct {
	got *http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.got = req
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusNoContent)
	return rec.Result(), nil
}

func TestNewClient_DefaultHeaders(t *testing.T) {
	rt := &recordingTransport{}
	c, err := NewClient(Options{
		Timeout: 3 * time.Second,
		Headers: map[string]string{"User-Agent": SimpleUserAgent, "Referer": "https://www.miyoushe.com/"},
		Base:    rt,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if c.Timeout != 3*time.Second {
		t.Fatalf("超时未生效：%v", c.Timeout)
	}

	req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	resp.Body.Close()

	if got := rt.got.Header.Get("User-Agent"); got != SimpleUserAgent {
		t.Fatalf("期望 UA=%q，实际 %q", SimpleUserAgent, got)
	}
	if got := rt.got.Header.Get("Referer"); got != "https://www.miyoushe.com/" {
		t.Fatalf("期望 Referer，实际 %q", got)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Fatalf("不应修改调用方的 request")
	}
}

func TestNewClient_ExplicitHeaderWins(t *testing.T) {
	rt := &recordingTransport{}
	c, _ := NewClient(Options{Headers: map[string]string{"User-Agent": SimpleUserAgent}, Base: rt})

	req, _ := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Header.Set("User-Agent", "custom")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	resp.Body.Close()
	if got := rt.got.Header.Get("User-Agent"); got != "custom" {
		t.Fatalf("显式设置的 UA 应保留，实际 %q", got)
	}
}

func TestNewClient_Proxy(t *testing.T) {
	c, err := NewClient(Options{ProxyURL: "http://127.0.0.1:7890"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	tr := c.Transport.(*Transport)
	base, ok := tr.Base.(*http.Transport)
	if !ok {
		t.Fatalf("期望 *http.Transport，实际 %T", tr.Base)
	}
	if base.Proxy == nil {
		t.Fatalf("期望启用代理")
	}

	c2, _ := NewClient(Options{})
	if c2.Transport.(*Transport).Base.(*http.Transport).Proxy != nil {
		t.Fatalf("未配置代理时不应走代理")
	}
}

func TestNewClient_InvalidProxy(t *testing.T) {
	if _, err := NewClient(Options{ProxyURL: "http://[::1"}); err == nil {
		t.Fatalf("期望错误，但得到 nil")
	}
	if _, err := NewClient(Options{ProxyURL: "127.0.0.1"}); err == nil {
		t.Fatalf("非绝对 URL 应报错")
	}
}
