package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"hiringgo/log-service/internal/model"
)

// ── Mock LogRepository ──

type mockLogRepo struct {
	logs   map[int64]*model.WorkLog
	nextID int64
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{logs: make(map[int64]*model.WorkLog), nextID: 1}
}

func (m *mockLogRepo) Create(_ context.Context, log *model.WorkLog) error {
	if log.ID == 0 {
		log.ID = m.nextID
		m.nextID++
	}
	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now
	stored := *log
	m.logs[log.ID] = &stored
	return nil
}

func (m *mockLogRepo) GetByID(_ context.Context, id int64) (*model.WorkLog, error) {
	if l, ok := m.logs[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLogRepo) Update(_ context.Context, log *model.WorkLog) error {
	log.UpdatedAt = time.Now()
	stored := *log
	m.logs[log.ID] = &stored
	return nil
}

func (m *mockLogRepo) Delete(_ context.Context, id int64) error {
	delete(m.logs, id)
	return nil
}

func (m *mockLogRepo) ListByStudentAndVacancy(_ context.Context, studentID, vacancyID int64) ([]model.WorkLog, error) {
	var result []model.WorkLog
	for _, l := range m.logs {
		if l.StudentID == studentID && l.VacancyID == vacancyID {
			result = append(result, *l)
		}
	}
	sortLogs(result)
	return result, nil
}

func (m *mockLogRepo) ListByVacancyAndStatus(_ context.Context, vacancyID int64, status model.LogStatus) ([]model.WorkLog, error) {
	var result []model.WorkLog
	for _, l := range m.logs {
		if l.VacancyID == vacancyID && l.Status == status {
			result = append(result, *l)
		}
	}
	sortLogs(result)
	return result, nil
}

func (m *mockLogRepo) ListAcceptedByStudent(_ context.Context, studentID int64) ([]model.WorkLog, error) {
	var result []model.WorkLog
	for _, l := range m.logs {
		if l.StudentID == studentID && l.Status == model.StatusAccepted {
			result = append(result, *l)
		}
	}
	sortLogs(result)
	return result, nil
}

func (m *mockLogRepo) ListAcceptedByMonth(_ context.Context, studentID int64, year int, month time.Month) ([]model.WorkLog, error) {
	var result []model.WorkLog
	for _, l := range m.logs {
		if l.StudentID != studentID || l.Status != model.StatusAccepted {
			continue
		}
		if l.LogDate.Year() != year || l.LogDate.Month() != month {
			continue
		}
		result = append(result, *l)
	}
	sortLogs(result)
	return result, nil
}

// sortLogs 与真实仓库一致：log_date 倒序，再按 id 倒序
func sortLogs(logs []model.WorkLog) {
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].LogDate.Equal(logs[j].LogDate) {
			return logs[i].LogDate.After(logs[j].LogDate)
		}
		return logs[i].ID > logs[j].ID
	})
}
