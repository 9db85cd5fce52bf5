package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"hiringgo/log-service/internal/dto"
	"hiringgo/log-service/internal/model"
	"hiringgo/log-service/internal/repository"
	"hiringgo/log-service/pkg/jwt"
)

func setupLogService() (LogService, *mockLogRepo) {
	mock := newMockLogRepo()
	repo := &repository.Repository{Log: mock}
	svc := NewLogService(repo, NewLogValidator(), nil, zap.NewNop())
	return svc, mock
}

func validCreateReq() *dto.CreateLogRequest {
	return &dto.CreateLogRequest{
		VacancyID:   456,
		Title:       "批改第一次作业",
		Description: "批改高级编程课程第一次作业，共 40 份",
		Category:    "Asistensi",
		StartTime:   "2025-05-01T09:00:00Z",
		EndTime:     "2025-05-01T11:00:00Z",
		LogDate:     "2025-05-01",
	}
}

func seedLog(t *testing.T, mock *mockLogRepo, studentID, vacancyID int64, status model.LogStatus, logDate time.Time) *model.WorkLog {
	t.Helper()
	log := &model.WorkLog{
		StudentID:   studentID,
		VacancyID:   vacancyID,
		Title:       "辅导答疑",
		Description: "晚间实验室答疑",
		Category:    "Asistensi",
		StartTime:   logDate.Add(9 * time.Hour),
		EndTime:     logDate.Add(11 * time.Hour),
		LogDate:     logDate,
		Status:      status,
		Messages:    model.StringArray{},
	}
	if err := mock.Create(context.Background(), log); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return log
}

// ── Create ──

func TestLogService_Create_Success(t *testing.T) {
	svc, mock := setupLogService()

	resp, err := svc.Create(context.Background(), validCreateReq(), 42)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.ID == 0 {
		t.Error("expected assigned id")
	}
	if resp.StudentID != 42 {
		t.Errorf("expected student_id 42, got %d", resp.StudentID)
	}
	if resp.Status != string(model.StatusReported) {
		t.Errorf("expected status REPORTED, got %s", resp.Status)
	}
	if resp.LogDate != "2025-05-01" {
		t.Errorf("expected log_date 2025-05-01, got %s", resp.LogDate)
	}

	stored, err := mock.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("stored log not found: %v", err)
	}
	if stored.Title != "批改第一次作业" || stored.VacancyID != 456 {
		t.Errorf("stored log mismatch: %+v", stored)
	}
}

func TestLogService_Create_ValidationError(t *testing.T) {
	svc, _ := setupLogService()

	req := validCreateReq()
	req.Title = ""
	_, err := svc.Create(context.Background(), req, 42)
	assertValidationMsg(t, err, MsgTitleRequired)
}

func TestLogService_Create_MalformedTimes(t *testing.T) {
	svc, _ := setupLogService()

	req := validCreateReq()
	req.StartTime = "昨天上午"
	_, err := svc.Create(context.Background(), req, 42)
	assertValidationMsg(t, err, MsgStartTimeInvalid)

	req = validCreateReq()
	req.EndTime = "11:00"
	_, err = svc.Create(context.Background(), req, 42)
	assertValidationMsg(t, err, MsgEndTimeInvalid)

	req = validCreateReq()
	req.LogDate = "01/05/2025"
	_, err = svc.Create(context.Background(), req, 42)
	assertValidationMsg(t, err, MsgLogDateInvalid)
}

// ── GetByID ──

func TestLogService_GetByID(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	resp, err := svc.GetByID(context.Background(), log.ID, 42)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if resp.ID != log.ID {
		t.Errorf("expected id %d, got %d", log.ID, resp.ID)
	}

	if _, err := svc.GetByID(context.Background(), log.ID, 99); !errors.Is(err, ErrLogForbidden) {
		t.Errorf("expected ErrLogForbidden for non-owner, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), 9999, 42); !errors.Is(err, ErrLogNotFound) {
		t.Errorf("expected ErrLogNotFound, got %v", err)
	}
}

// ── Update ──

func TestLogService_Update_Success(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	req := &dto.UpdateLogRequest{
		Title:       "修订后的标题",
		Description: "修订后的描述",
		Category:    "Koreksi",
		StartTime:   "2025-05-01T13:00:00Z",
		EndTime:     "2025-05-01T15:30:00Z",
		LogDate:     "2025-05-01",
	}
	resp, err := svc.Update(context.Background(), log.ID, req, 42)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if resp.Title != "修订后的标题" || resp.Category != "Koreksi" {
		t.Errorf("update not applied: %+v", resp)
	}
	// student_id / vacancy_id / status 不可变
	if resp.StudentID != 42 || resp.VacancyID != 456 || resp.Status != string(model.StatusReported) {
		t.Errorf("immutable fields changed: %+v", resp)
	}
}

func TestLogService_Update_Forbidden(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	req := &dto.UpdateLogRequest{
		Title: "改别人的日志", Description: "x", Category: "x",
		StartTime: "2025-05-01T09:00:00Z", EndTime: "2025-05-01T10:00:00Z", LogDate: "2025-05-01",
	}
	if _, err := svc.Update(context.Background(), log.ID, req, 99); !errors.Is(err, ErrLogForbidden) {
		t.Errorf("expected ErrLogForbidden, got %v", err)
	}
}

func TestLogService_Update_AfterVerification(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []model.LogStatus{model.StatusAccepted, model.StatusRejected} {
		log := seedLog(t, mock, 42, 456, status, logDate)
		req := &dto.UpdateLogRequest{
			Title: "不该成功", Description: "x", Category: "x",
			StartTime: "2025-05-01T09:00:00Z", EndTime: "2025-05-01T10:00:00Z", LogDate: "2025-05-01",
		}
		if _, err := svc.Update(context.Background(), log.ID, req, 42); !errors.Is(err, ErrLogNotEditable) {
			t.Errorf("status %s: expected ErrLogNotEditable, got %v", status, err)
		}
	}
}

// ── Delete ──

func TestLogService_Delete(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	if err := svc.Delete(context.Background(), log.ID, 42); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := mock.GetByID(context.Background(), log.ID); err == nil {
		t.Error("expected log to be removed")
	}
	if err := svc.Delete(context.Background(), log.ID, 42); !errors.Is(err, ErrLogNotFound) {
		t.Errorf("expected ErrLogNotFound, got %v", err)
	}
}

func TestLogService_Delete_Forbidden(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	if err := svc.Delete(context.Background(), log.ID, 99); !errors.Is(err, ErrLogForbidden) {
		t.Errorf("expected ErrLogForbidden, got %v", err)
	}
}

func TestLogService_Delete_AfterVerification(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusAccepted, logDate)

	if err := svc.Delete(context.Background(), log.ID, 42); !errors.Is(err, ErrLogNotDeletable) {
		t.Errorf("expected ErrLogNotDeletable, got %v", err)
	}
}

// ── Verify ──

func TestLogService_Verify_Accept(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	resp, err := svc.Verify(context.Background(), log.ID, model.ActionAccept)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.Status != string(model.StatusAccepted) {
		t.Errorf("expected ACCEPTED, got %s", resp.Status)
	}

	stored, _ := mock.GetByID(context.Background(), log.ID)
	if stored.Status != model.StatusAccepted {
		t.Errorf("expected persisted ACCEPTED, got %s", stored.Status)
	}

	// 终态不可再次验证
	if _, err := svc.Verify(context.Background(), log.ID, model.ActionReject); !errors.Is(err, model.ErrAlreadyVerified) {
		t.Errorf("expected ErrAlreadyVerified, got %v", err)
	}
	stored, _ = mock.GetByID(context.Background(), log.ID)
	if stored.Status != model.StatusAccepted {
		t.Errorf("status changed after rejected re-verify: %s", stored.Status)
	}
}

func TestLogService_Verify_Reject(t *testing.T) {
	svc, mock := setupLogService()
	logDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, logDate)

	resp, err := svc.Verify(context.Background(), log.ID, model.ActionReject)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.Status != string(model.StatusRejected) {
		t.Errorf("expected REJECTED, got %s", resp.Status)
	}
}

func TestLogService_Verify_NotFound(t *testing.T) {
	svc, _ := setupLogService()
	if _, err := svc.Verify(context.Background(), 404, model.ActionAccept); !errors.Is(err, ErrLogNotFound) {
		t.Errorf("expected ErrLogNotFound, got %v", err)
	}
}

// ── List ──

func TestLogService_ListForStudent(t *testing.T) {
	svc, mock := setupLogService()
	d1 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)

	older := seedLog(t, mock, 42, 456, model.StatusReported, d1)
	newer := seedLog(t, mock, 42, 456, model.StatusAccepted, d2)
	seedLog(t, mock, 42, 789, model.StatusReported, d1) // 其他职位
	seedLog(t, mock, 77, 456, model.StatusReported, d1) // 其他学生

	logs, err := svc.ListForStudent(context.Background(), 42, 456)
	if err != nil {
		t.Fatalf("ListForStudent failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	// log_date 倒序
	if logs[0].ID != newer.ID || logs[1].ID != older.ID {
		t.Errorf("unexpected order: %d, %d", logs[0].ID, logs[1].ID)
	}
}

func TestLogService_ListForLecturer_OnlyReported(t *testing.T) {
	svc, mock := setupLogService()
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	reported := seedLog(t, mock, 42, 456, model.StatusReported, d)
	seedLog(t, mock, 42, 456, model.StatusAccepted, d)
	seedLog(t, mock, 77, 456, model.StatusRejected, d)

	logs, err := svc.ListForLecturer(context.Background(), 456)
	if err != nil {
		t.Fatalf("ListForLecturer failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != reported.ID {
		t.Fatalf("expected only the REPORTED log, got %+v", logs)
	}
}

// ── Messages ──

func TestLogService_AddMessage(t *testing.T) {
	svc, mock := setupLogService()
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, d)

	// 学生本人可留言
	if _, err := svc.AddMessage(context.Background(), log.ID, 42, jwt.RoleStudent, "本周作业批改进度正常"); err != nil {
		t.Fatalf("owner AddMessage failed: %v", err)
	}
	// 讲师可对任意日志留言
	resp, err := svc.AddMessage(context.Background(), log.ID, 7, jwt.RoleLecturer, "请补充具体批改数量")
	if err != nil {
		t.Fatalf("lecturer AddMessage failed: %v", err)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	// 追加顺序保持插入序
	if resp.Messages[0] != "本周作业批改进度正常" || resp.Messages[1] != "请补充具体批改数量" {
		t.Errorf("unexpected message order: %v", resp.Messages)
	}
}

func TestLogService_AddMessage_Forbidden(t *testing.T) {
	svc, mock := setupLogService()
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, d)

	if _, err := svc.AddMessage(context.Background(), log.ID, 99, jwt.RoleStudent, "我不是日志的主人"); !errors.Is(err, ErrLogForbidden) {
		t.Errorf("expected ErrLogForbidden, got %v", err)
	}
}

func TestLogService_AddMessage_Blank(t *testing.T) {
	svc, mock := setupLogService()
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, d)

	if _, err := svc.AddMessage(context.Background(), log.ID, 42, jwt.RoleStudent, "   "); !errors.Is(err, ErrBlankMessage) {
		t.Errorf("expected ErrBlankMessage, got %v", err)
	}
}

func TestLogService_GetMessages(t *testing.T) {
	svc, mock := setupLogService()
	d := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	log := seedLog(t, mock, 42, 456, model.StatusReported, d)

	for _, msg := range []string{"第一条", "第二条", "第三条"} {
		if _, err := svc.AddMessage(context.Background(), log.ID, 42, jwt.RoleStudent, msg); err != nil {
			t.Fatalf("AddMessage failed: %v", err)
		}
	}

	msgs, err := svc.GetMessages(context.Background(), log.ID, 42, jwt.RoleStudent)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 3 || msgs[0] != "第一条" || msgs[2] != "第三条" {
		t.Errorf("unexpected messages: %v", msgs)
	}

	// 讲师可读；无关学生不可读
	if _, err := svc.GetMessages(context.Background(), log.ID, 7, jwt.RoleLecturer); err != nil {
		t.Errorf("lecturer GetMessages failed: %v", err)
	}
	if _, err := svc.GetMessages(context.Background(), log.ID, 99, jwt.RoleStudent); !errors.Is(err, ErrLogForbidden) {
		t.Errorf("expected ErrLogForbidden, got %v", err)
	}
}
