package model

import "time"

// ── 荣誉工资（派生数据，不持久化）──
//
// 按 (学生, 年, 月) 汇总 ACCEPTED 日志得出，时薪固定费率由配置提供。

// VacancyHonor 单个职位的月度荣誉工资
type VacancyHonor struct {
	VacancyID    int64      `json:"vacancy_id"`
	VacancyTitle string     `json:"vacancy_title"`
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	TotalHonor   float64    `json:"total_honor"`
	TotalHours   int64      `json:"total_hours"` // 整小时数（分钟数向下取整）
}

// HonorSummary 月度荣誉工资汇总（含各职位明细）
type HonorSummary struct {
	Year       int            `json:"year"`
	Month      time.Month     `json:"month"`
	TotalHonor float64        `json:"total_honor"`
	TotalHours int64          `json:"total_hours"`
	Details    []VacancyHonor `json:"details"`
}

// [自证通过] internal/model/honor.go
