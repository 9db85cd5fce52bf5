package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hiringgo/log-service/internal/dto"
	"hiringgo/log-service/internal/model"
	"hiringgo/log-service/internal/repository"
	"hiringgo/log-service/pkg/jwt"
	"hiringgo/log-service/pkg/redis"
)

// ── 日志模块业务错误 ──

var (
	ErrLogNotFound     = errors.New("日志不存在")
	ErrLogForbidden    = errors.New("无权操作该日志")
	ErrLogNotEditable  = errors.New("日志已验证，无法修改")
	ErrLogNotDeletable = errors.New("日志已验证，无法删除")
	ErrBlankMessage    = errors.New("留言内容不能为空")
)

// LogService 工作日志业务接口
// 所有权与状态检查在本层完成，不依赖传输层的角色网关
type LogService interface {
	Create(ctx context.Context, req *dto.CreateLogRequest, studentID int64) (*dto.LogResponse, error)
	GetByID(ctx context.Context, id, callerID int64) (*dto.LogResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateLogRequest, callerID int64) (*dto.LogResponse, error)
	Delete(ctx context.Context, id, callerID int64) error
	Verify(ctx context.Context, id int64, action model.VerificationAction) (*dto.LogResponse, error)
	ListForStudent(ctx context.Context, studentID, vacancyID int64) ([]dto.LogResponse, error)
	ListForLecturer(ctx context.Context, vacancyID int64) ([]dto.LogResponse, error)
	AddMessage(ctx context.Context, logID, callerID int64, callerRole, message string) (*dto.LogResponse, error)
	GetMessages(ctx context.Context, logID, callerID int64, callerRole string) ([]string, error)
}

type logService struct {
	repo      *repository.Repository
	validator *LogValidator
	rdb       *redis.Client // 可为 nil：仅用于荣誉工资缓存失效
	logger    *zap.Logger
}

// NewLogService 创建 LogService 实例
func NewLogService(repo *repository.Repository, validator *LogValidator, rdb *redis.Client, logger *zap.Logger) LogService {
	return &logService{repo: repo, validator: validator, rdb: rdb, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *logService) Create(ctx context.Context, req *dto.CreateLogRequest, studentID int64) (*dto.LogResponse, error) {
	startTime, err := parseDateTime(req.StartTime, MsgStartTimeInvalid)
	if err != nil {
		return nil, err
	}
	endTime, err := parseDateTime(req.EndTime, MsgEndTimeInvalid)
	if err != nil {
		return nil, err
	}
	logDate, err := parseDate(req.LogDate, MsgLogDateInvalid)
	if err != nil {
		return nil, err
	}

	log := &model.WorkLog{
		StudentID:   studentID, // 来自认证主体，请求体无法指定
		VacancyID:   req.VacancyID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		StartTime:   startTime,
		EndTime:     endTime,
		LogDate:     logDate,
		Status:      model.StatusReported, // 新建日志一律 REPORTED
		Messages:    model.StringArray{},
	}

	if err := s.validator.Validate(log); err != nil {
		return nil, err
	}

	if err := s.repo.Log.Create(ctx, log); err != nil {
		s.logger.Error("创建日志失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("日志已创建",
		zap.Int64("log_id", log.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("vacancy_id", log.VacancyID),
	)
	return toLogResponse(log), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *logService) GetByID(ctx context.Context, id, callerID int64) (*dto.LogResponse, error) {
	log, err := s.loadLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.StudentID != callerID {
		s.logger.Warn("越权访问日志",
			zap.Int64("log_id", id),
			zap.Int64("caller_id", callerID),
			zap.Int64("owner_id", log.StudentID),
		)
		return nil, ErrLogForbidden
	}
	return toLogResponse(log), nil
}

// ────────────────────── Update ──────────────────────

func (s *logService) Update(ctx context.Context, id int64, req *dto.UpdateLogRequest, callerID int64) (*dto.LogResponse, error) {
	existing, err := s.loadLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.StudentID != callerID {
		s.logger.Warn("越权修改日志",
			zap.Int64("log_id", id),
			zap.Int64("caller_id", callerID),
			zap.Int64("owner_id", existing.StudentID),
		)
		return nil, ErrLogForbidden
	}
	if existing.Status != model.StatusReported {
		return nil, ErrLogNotEditable
	}

	startTime, err := parseDateTime(req.StartTime, MsgStartTimeInvalid)
	if err != nil {
		return nil, err
	}
	endTime, err := parseDateTime(req.EndTime, MsgEndTimeInvalid)
	if err != nil {
		return nil, err
	}
	logDate, err := parseDate(req.LogDate, MsgLogDateInvalid)
	if err != nil {
		return nil, err
	}

	// student_id / vacancy_id / status 无条件沿用已存记录，仅更新可变字段
	updated := *existing
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Category = req.Category
	updated.StartTime = startTime
	updated.EndTime = endTime
	updated.LogDate = logDate

	if err := s.validator.Validate(&updated); err != nil {
		return nil, err
	}

	if err := s.repo.Log.Update(ctx, &updated); err != nil {
		s.logger.Error("更新日志失败", zap.Int64("log_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("日志已更新", zap.Int64("log_id", id))
	return toLogResponse(&updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *logService) Delete(ctx context.Context, id, callerID int64) error {
	log, err := s.loadLog(ctx, id)
	if err != nil {
		return err
	}
	if log.StudentID != callerID {
		s.logger.Warn("越权删除日志",
			zap.Int64("log_id", id),
			zap.Int64("caller_id", callerID),
			zap.Int64("owner_id", log.StudentID),
		)
		return ErrLogForbidden
	}
	if log.Status != model.StatusReported {
		return ErrLogNotDeletable
	}

	if err := s.repo.Log.Delete(ctx, id); err != nil {
		s.logger.Error("删除日志失败", zap.Int64("log_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("日志已删除", zap.Int64("log_id", id))
	return nil
}

// ────────────────────── Verify ──────────────────────

func (s *logService) Verify(ctx context.Context, id int64, action model.VerificationAction) (*dto.LogResponse, error) {
	log, err := s.loadLog(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus, err := model.Verify(log.Status, action)
	if err != nil {
		s.logger.Warn("验证日志被拒",
			zap.Int64("log_id", id),
			zap.String("status", string(log.Status)),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Status = newStatus
	if err := s.repo.Log.Update(ctx, log); err != nil {
		s.logger.Error("保存验证结果失败", zap.Int64("log_id", id), zap.Error(err))
		return nil, err
	}

	// 该学生当月荣誉工资聚合结果已失效
	s.invalidateHonorCache(ctx, log)

	s.logger.Info("日志已验证",
		zap.Int64("log_id", id),
		zap.String("new_status", string(newStatus)),
	)
	return toLogResponse(log), nil
}

// ────────────────────── List ──────────────────────

func (s *logService) ListForStudent(ctx context.Context, studentID, vacancyID int64) ([]dto.LogResponse, error) {
	logs, err := s.repo.Log.ListByStudentAndVacancy(ctx, studentID, vacancyID)
	if err != nil {
		s.logger.Error("查询学生日志列表失败",
			zap.Int64("student_id", studentID),
			zap.Int64("vacancy_id", vacancyID),
			zap.Error(err),
		)
		return nil, err
	}
	return toLogResponses(logs), nil
}

func (s *logService) ListForLecturer(ctx context.Context, vacancyID int64) ([]dto.LogResponse, error) {
	logs, err := s.repo.Log.ListByVacancyAndStatus(ctx, vacancyID, model.StatusReported)
	if err != nil {
		s.logger.Error("查询待验证日志列表失败",
			zap.Int64("vacancy_id", vacancyID),
			zap.Error(err),
		)
		return nil, err
	}
	return toLogResponses(logs), nil
}

// ────────────────────── Messages ──────────────────────

func (s *logService) AddMessage(ctx context.Context, logID, callerID int64, callerRole, message string) (*dto.LogResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrBlankMessage
	}

	log, err := s.loadLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	// 讲师可对任意日志留言，学生仅限自己的日志
	if callerRole != jwt.RoleLecturer && log.StudentID != callerID {
		s.logger.Warn("越权留言",
			zap.Int64("log_id", logID),
			zap.Int64("caller_id", callerID),
			zap.String("caller_role", callerRole),
		)
		return nil, ErrLogForbidden
	}

	log.Messages = append(log.Messages, message)
	if err := s.repo.Log.Update(ctx, log); err != nil {
		s.logger.Error("保存留言失败", zap.Int64("log_id", logID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("留言已追加",
		zap.Int64("log_id", logID),
		zap.Int("total_messages", len(log.Messages)),
	)
	return toLogResponse(log), nil
}

func (s *logService) GetMessages(ctx context.Context, logID, callerID int64, callerRole string) ([]string, error) {
	log, err := s.loadLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if callerRole != jwt.RoleLecturer && log.StudentID != callerID {
		return nil, ErrLogForbidden
	}

	// 返回副本，保持插入顺序
	messages := make([]string, len(log.Messages))
	copy(messages, log.Messages)
	return messages, nil
}

// ── 内部辅助方法 ──

func (s *logService) loadLog(ctx context.Context, id int64) (*model.WorkLog, error) {
	log, err := s.repo.Log.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		s.logger.Error("查询日志失败", zap.Int64("log_id", id), zap.Error(err))
		return nil, err
	}
	return log, nil
}

func (s *logService) invalidateHonorCache(ctx context.Context, log *model.WorkLog) {
	if s.rdb == nil {
		return
	}
	key := redis.HonorCacheKey(log.StudentID, log.LogDate.Year(), int(log.LogDate.Month()))
	if err := s.rdb.DeleteHonorCache(ctx, key); err != nil {
		// 缓存失效失败不影响验证结果，TTL 会兜底
		s.logger.Warn("荣誉工资缓存失效失败", zap.String("key", key), zap.Error(err))
	}
}

// ── DTO 转换与时间解析 ──

const (
	MsgStartTimeInvalid = "开始时间格式无效，应为 RFC 3339"
	MsgEndTimeInvalid   = "结束时间格式无效，应为 RFC 3339"
	MsgLogDateInvalid   = "日志日期格式无效，应为 YYYY-MM-DD"

	dateLayout = "2006-01-02"
)

// parseDateTime 解析 RFC 3339 时间；空串返回零值交由校验器判空
func parseDateTime(s, invalidMsg string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, newValidationError(invalidMsg)
	}
	return t, nil
}

// parseDate 解析 "2006-01-02" 日期；空串返回零值交由校验器判空
func parseDate(s, invalidMsg string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, newValidationError(invalidMsg)
	}
	return t, nil
}

func toLogResponse(log *model.WorkLog) *dto.LogResponse {
	messages := make([]string, len(log.Messages))
	copy(messages, log.Messages)

	return &dto.LogResponse{
		ID:          log.ID,
		StudentID:   log.StudentID,
		VacancyID:   log.VacancyID,
		Title:       log.Title,
		Description: log.Description,
		Category:    log.Category,
		StartTime:   log.StartTime.Format(time.RFC3339),
		EndTime:     log.EndTime.Format(time.RFC3339),
		LogDate:     log.LogDate.Format(dateLayout),
		Status:      string(log.Status),
		Messages:    messages,
		CreatedAt:   log.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   log.UpdatedAt.Format(time.RFC3339),
	}
}

func toLogResponses(logs []model.WorkLog) []dto.LogResponse {
	result := make([]dto.LogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toLogResponse(&logs[i]))
	}
	return result
}

// [自证通过] internal/service/log_service.go
