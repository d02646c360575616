package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"level-proxy/internal/models"
	"level-proxy/internal/pkg/imageproxy"
	"level-proxy/internal/pkg/upstream"
)

// Handlers 包含所有处理器
type Handlers struct {
	Image  *ImageHandler
	Level  *LevelHandler
	Health *HealthHandler
}

// NewHandlers 创建新的处理器集合
func NewHandlers(fetcher *imageproxy.Fetcher, adapter upstream.Adapter) *Handlers {
	return &Handlers{
		Image:  NewImageHandler(fetcher),
		Level:  NewLevelHandler(adapter),
		Health: NewHealthHandler(adapter.Name()),
	}
}

// writeJSON 写入JSON响应；不转义 HTML 字符，URL 中的 & 原样输出
func writeJSON(w http.ResponseWriter, status int, response models.APIResponse) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(response); err != nil {
		slog.Error("编码响应失败", "error", err)
	}
}

// writeSuccessResponse 写入成功响应
func writeSuccessResponse(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
	})
}

// writeErrorResponse 写入错误响应，客户端只看到 message；内部细节进日志
func writeErrorResponse(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		if code >= http.StatusInternalServerError {
			slog.Error(message, "status", code, "error", err)
		} else {
			slog.Warn(message, "status", code, "error", err)
		}
	}
	writeJSON(w, code, models.APIResponse{Error: message})
}

// handleAppError 处理应用错误
func handleAppError(w http.ResponseWriter, appErr *models.AppError) {
	writeErrorResponse(w, appErr.Code, appErr.Message, appErr.Err)
}

// allowMethods 校验请求方法；不允许时写入405
func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	writeErrorResponse(w, http.StatusMethodNotAllowed, "方法不允许", nil)
	return false
}
