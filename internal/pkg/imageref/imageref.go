// Package imageref 编解码图片代理路径中的 URL 引用。
//
// 编码顺序固定为 base64(url) 再做百分号编码；解码反之：先百分号解码，再 base64 解码。
// 生成代理地址的一方必须使用 Encode，否则无法保证往返一致。
package imageref

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// FakeExtension 是可选的伪扩展名，仅为让前端/CDN 识别为图片
const FakeExtension = ".png"

// PathPrefix 是图片代理的路由前缀
const PathPrefix = "/proxy-image/"

var (
	ErrEmpty      = errors.New("图片引用为空")
	ErrNotAbsURL  = errors.New("解码结果不是绝对 http(s) URL")
	errBadPercent = errors.New("百分号编码无效")
)

// TrimExtension 去掉末尾的 .png（若存在）
func TrimExtension(ref string) string {
	return strings.TrimSuffix(ref, FakeExtension)
}

// Encode 把绝对 URL 编码为可放入路径的引用（不含伪扩展名）
func Encode(rawURL string) string {
	b64 := base64.StdEncoding.EncodeToString([]byte(rawURL))
	return url.PathEscape(b64)
}

// ProxyPath 返回完整的代理路径，例如 /proxy-image/aHR0cHM6...%3D.png
func ProxyPath(rawURL string) string {
	return PathPrefix + Encode(rawURL) + FakeExtension
}

// Decode 把路径段还原为绝对 URL。ref 可以带或不带 .png。
func Decode(ref string) (string, error) {
	ref = TrimExtension(ref)
	if ref == "" {
		return "", ErrEmpty
	}

	unescaped, err := url.PathUnescape(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadPercent, err)
	}

	raw, err := decodeBase64(unescaped)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAbsURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrNotAbsURL
	}
	return string(raw), nil
}

// decodeBase64 兼容标准/URL 安全字母表，以及缺省填充的写法
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("base64 解码失败: %w", lastErr)
}
