// Package upstream 把不同的关卡元数据接口适配为统一的 models.LevelRecord。
//
// 每个部署只对接一个上游，适配器在启动时按名称选定，请求处理中不做分支。
package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"level-proxy/internal/models"
)

// Adapter 把上游变化限制在本包内。
//
// 约束：
// - Fetch 只做一次请求，不缓存、不重试；非 2xx 返回 *StatusError
// - Normalize 必须是纯函数：相同输入 => 相同输出
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, id string) ([]byte, error)
	Normalize(id string, body []byte) (models.LevelRecord, error)
}

// Lookup 串联 Fetch 与 Normalize
func Lookup(ctx context.Context, a Adapter, id string) (models.LevelRecord, error) {
	body, err := a.Fetch(ctx, id)
	if err != nil {
		return models.LevelRecord{}, err
	}
	return a.Normalize(id, body)
}

var (
	// ErrInvalidData 表示上游有响应但缺少必需的嵌套结构
	ErrInvalidData = errors.New("数据结构异常或ID无效")
	// ErrMalformed 表示上游响应不是合法 JSON
	ErrMalformed = errors.New("上游响应不是合法 JSON")
)

// StatusError 表示上游返回了非 2xx 的 HTTP 状态码
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("Upstream API Error: %d", e.StatusCode)
}

// BusinessError 表示上游业务码非 0（米游社 retcode）
type BusinessError struct {
	Code    int64
	Message string
}

func (e *BusinessError) Error() string {
	if e == nil {
		return "API Error"
	}
	return "API Error: " + e.Message
}

// Registry 是适配器的只读注册表（按 name 索引）
type Registry struct {
	byName map[string]Adapter
}

func NewRegistry(adapters ...Adapter) (Registry, error) {
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			return Registry{}, fmt.Errorf("adapter 不能为空")
		}
		name := normName(a.Name())
		if name == "" {
			return Registry{}, fmt.Errorf("adapter.Name 不能为空")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("重复的 adapter：%q", name)
		}
		byName[name] = a
	}
	return Registry{byName: byName}, nil
}

func (r Registry) Get(name string) (Adapter, bool) {
	if r.byName == nil {
		return nil, false
	}
	a, ok := r.byName[normName(name)]
	return a, ok
}

func normName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
