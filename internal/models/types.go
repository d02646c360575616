package models

// APIResponse 统一的API响应格式
//
// 成功时为 {"success":true,"data":...}，失败时只有 {"error":"..."}。
type APIResponse struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthStatus 是 /healthz 的响应数据
type HealthStatus struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}
