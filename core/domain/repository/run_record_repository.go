package repository

import (
	"context"

	"mahjongsim/core/domain/entity"
)

// RunRecordRepository 模拟报告仓储接口
type RunRecordRepository interface {
	SaveRunRecord(ctx context.Context, record *entity.RunRecord) error

	// FindRunRecord 按 run_id 查找
	FindRunRecord(ctx context.Context, runID string) (*entity.RunRecord, error)

	// FindRecentRunRecords 按开始时间倒序，mode 为空时不过滤
	FindRecentRunRecords(ctx context.Context, mode string, limit int) ([]*entity.RunRecord, error)
}
