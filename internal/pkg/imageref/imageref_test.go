package imageref

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	urls := []string{
		"https://example.com/a.png",
		"https://upload-bbs.miyoushe.com/upload/2024/01/01/cover.jpg?x-oss-process=image/resize,w_640",
		"http://img.example.org/路径/图片.webp",
		"https://example.com/?a=1&b=2+3#frag",
		"https://e.co/x", // base64 需要填充
	}
	for _, u := range urls {
		for _, ref := range []string{Encode(u), Encode(u) + ".png"} {
			got, err := Decode(ref)
			if err != nil {
				t.Fatalf("Decode(%q) 不期望错误：%v", ref, err)
			}
			if got != u {
				t.Fatalf("往返不一致：期望 %q，实际 %q", u, got)
			}
		}
	}
}

func TestEncode_PathSafe(t *testing.T) {
	// 该 URL 的 base64 含有 '/' 与 '+'
	ref := Encode("https://example.com/??>>~~")
	if strings.Contains(ref, "/") {
		t.Fatalf("编码结果不应包含 '/'：%q", ref)
	}
}

func TestProxyPath(t *testing.T) {
	p := ProxyPath("https://example.com/a.png")
	if !strings.HasPrefix(p, PathPrefix) || !strings.HasSuffix(p, FakeExtension) {
		t.Fatalf("代理路径格式不对：%q", p)
	}
	got, err := Decode(strings.TrimPrefix(p, PathPrefix))
	if err != nil || got != "https://example.com/a.png" {
		t.Fatalf("ProxyPath 无法解回：%q %v", got, err)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		want error
	}{
		{"空", "", ErrEmpty},
		{"只有扩展名", ".png", ErrEmpty},
		{"非 URL", Encode("not a url"), ErrNotAbsURL},
		{"非 http 协议", Encode("file:///etc/passwd"), ErrNotAbsURL},
	}
	for _, c := range cases {
		_, err := Decode(c.ref)
		if !errors.Is(err, c.want) {
			t.Fatalf("%s：期望 %v，实际 %v", c.name, c.want, err)
		}
	}

	if _, err := Decode("%zz"); err == nil {
		t.Fatalf("非法百分号编码应报错")
	}
	if _, err := Decode("!!!not-base64!!!"); err == nil {
		t.Fatalf("非法 base64 应报错")
	}
}
