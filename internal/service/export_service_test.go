package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupExportService(t *testing.T) (ExportService, *mockLogRepo) {
	t.Helper()
	honor, mock := setupHonorService()
	return NewExportService(honor, zap.NewNop()), mock
}

func TestExportService_HonorRecap(t *testing.T) {
	svc, mock := setupExportService(t)
	d := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	seedAcceptedLog(t, mock, 42, 123, d, 2*time.Hour)
	seedAcceptedLog(t, mock, 42, 456, d, time.Hour)

	buf, filename, err := svc.ExportHonorRecap(context.Background(), 42, 2025, 5)
	if err != nil {
		t.Fatalf("ExportHonorRecap failed: %v", err)
	}
	if filename != "honor_recap_42_2025-05.xlsx" {
		t.Errorf("unexpected filename: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("generated file not readable: %v", err)
	}
	defer f.Close()

	const sheet = "Honor Recap"
	checks := []struct {
		cell string
		want string
	}{
		{"A1", "职位ID"},
		{"D1", "总工资"},
		{"A2", "123"},
		{"C2", "2"},
		{"D2", "55000"},
		{"A3", "456"},
		{"D3", "27500"},
		{"B4", "合计"},
		{"C4", "3"},
		{"D4", "82500"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", c.cell, err)
		}
		if got != c.want {
			t.Errorf("cell %s: expected %q, got %q", c.cell, c.want, got)
		}
	}
}

func TestExportService_NoData(t *testing.T) {
	svc, _ := setupExportService(t)

	if _, _, err := svc.ExportHonorRecap(context.Background(), 42, 2025, 5); !errors.Is(err, ErrExportNoData) {
		t.Errorf("expected ErrExportNoData, got %v", err)
	}
}

func TestExportService_PropagatesInvalidPeriod(t *testing.T) {
	svc, _ := setupExportService(t)

	if _, _, err := svc.ExportHonorRecap(context.Background(), 42, 2025, 13); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}
