package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/httpx"
	"level-proxy/internal/pkg/imageproxy"
	"level-proxy/internal/pkg/imageref"
)

// ImageCacheControl 编码后的 URL 与源地址一一对应，可以长期强缓存
const ImageCacheControl = "public, max-age=31104000, immutable"

// ImageHandler 处理 /proxy-image/{ref}[.png]
type ImageHandler struct {
	fetcher *imageproxy.Fetcher
}

// NewImageHandler 创建图片代理处理器
func NewImageHandler(fetcher *imageproxy.Fetcher) *ImageHandler {
	return &ImageHandler{fetcher: fetcher}
}

// ProxyImage 解码路径中的图片地址，拉取后原样返回
func (h *ImageHandler) ProxyImage(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	// 使用转义形式的路径，百分号解码由 imageref 负责
	ref := strings.TrimPrefix(r.URL.EscapedPath(), imageref.PathPrefix)
	ref = imageref.TrimExtension(ref)
	if ref == "" {
		handleAppError(w, models.NewBadRequestError("No URL provided", nil))
		return
	}

	imageURL, err := imageref.Decode(ref)
	if err != nil {
		handleAppError(w, models.NewDecodeError("Image error", err))
		return
	}

	img, err := h.fetcher.Fetch(r.Context(), imageURL)
	if err != nil {
		handleAppError(w, classifyImageError(err))
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Body)))
	w.Header().Set("Cache-Control", ImageCacheControl)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(img.Body); err != nil {
		slog.Debug("写入图片失败", "url", imageURL, "error", err)
	}
}

// classifyImageError 图片链路的上游失败一律按404处理，只在消息里区分原因
func classifyImageError(err error) *models.AppError {
	message := "Image error"
	var se *imageproxy.StatusError
	switch {
	case errors.As(err, &se):
		message = "Image error: upstream " + strconv.Itoa(se.StatusCode)
	case errors.Is(err, imageproxy.ErrTooLarge):
		message = "Image error: too large"
	case httpx.IsTimeout(err):
		message = "Image error: timeout"
	}
	return models.NewUpstreamError(http.StatusNotFound, message, err)
}
