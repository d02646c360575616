package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/upstream"
)

// LevelHandler 处理 /guid?id=...
type LevelHandler struct {
	adapter upstream.Adapter
}

// NewLevelHandler 创建关卡元数据处理器
func NewLevelHandler(adapter upstream.Adapter) *LevelHandler {
	return &LevelHandler{adapter: adapter}
}

// setNoCacheHeaders 元数据接口的所有响应（包括错误）都禁止缓存
func setNoCacheHeaders(h http.Header) {
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("Content-Type", "application/json; charset=utf-8")
}

// GetLevel 查询上游并返回统一结构
func (h *LevelHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	setNoCacheHeaders(w.Header())

	// 整形过程中的意外在这里收口为500，不把堆栈交给外层
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("关卡数据处理发生panic", "error", rec, "path", r.URL.Path)
			writeErrorResponse(w, http.StatusInternalServerError, "服务器内部错误或请求超时", nil)
		}
	}()

	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		handleAppError(w, models.NewBadRequestError("缺少 ID", nil))
		return
	}

	rec, err := upstream.Lookup(r.Context(), h.adapter, id)
	if err != nil {
		appErr := classifyLevelError(err)
		slog.Warn("关卡查询失败", "id", id, "upstream", h.adapter.Name(), "status", appErr.Code, "error", err)
		handleAppError(w, appErr)
		return
	}

	writeSuccessResponse(w, rec)
}

// classifyLevelError 把上游错误映射为对外的状态码：
// 非2xx/业务码/结构缺失 => 404；传输层失败、超时与非法响应 => 500
func classifyLevelError(err error) *models.AppError {
	var (
		se *upstream.StatusError
		be *upstream.BusinessError
	)
	switch {
	case errors.As(err, &be):
		return models.NewUpstreamError(http.StatusNotFound, be.Error(), err)
	case errors.As(err, &se):
		return models.NewUpstreamError(http.StatusNotFound, fmt.Sprintf("Upstream API Error: %d", se.StatusCode), err)
	case errors.Is(err, upstream.ErrInvalidData):
		return models.NewInvalidDataError("数据结构异常或ID无效", err)
	case errors.Is(err, upstream.ErrMalformed):
		return models.NewInternalError("服务器内部错误", err)
	default:
		return models.NewUpstreamError(http.StatusInternalServerError, "服务器内部错误或请求超时", err)
	}
}
