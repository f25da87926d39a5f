package persistence

import (
	"context"
	"errors"
	"fmt"

	"mahjongsim/common/database"
	"mahjongsim/common/log"
	"mahjongsim/core/domain/entity"
	"mahjongsim/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const runRecordCollection = "simulation_runs"

type RunRecordRepository struct {
	mongo *database.MongoManager
}

func NewRunRecordRepository(mongo *database.MongoManager) repository.RunRecordRepository {
	return &RunRecordRepository{mongo: mongo}
}

func (r *RunRecordRepository) SaveRunRecord(ctx context.Context, record *entity.RunRecord) error {
	collection := r.mongo.Db.Collection(runRecordCollection)

	_, err := collection.InsertOne(ctx, runRecordToDoc(record))
	if err != nil {
		log.Error("保存模拟记录失败: %v", err)
		return errors.Join(repository.ErrMongodb, err)
	}
	return nil
}

func (r *RunRecordRepository) FindRunRecord(ctx context.Context, runID string) (*entity.RunRecord, error) {
	collection := r.mongo.Db.Collection(runRecordCollection)

	var record entity.RunRecord
	err := collection.FindOne(ctx, bson.M{"run_id": runID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrRunRecordNotFound
		}
		log.Error("查询模拟记录失败: %v", err)
		return nil, err
	}
	return &record, nil
}

func (r *RunRecordRepository) FindRecentRunRecords(ctx context.Context, mode string, limit int) ([]*entity.RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit %d", repository.ErrInvalidQuery, limit)
	}
	collection := r.mongo.Db.Collection(runRecordCollection)

	opts := options.Find().
		SetSort(bson.M{"start_time": -1}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, recentFilter(mode), opts)
	if err != nil {
		log.Error("查询模拟记录失败: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*entity.RunRecord
	if err := cursor.All(ctx, &records); err != nil {
		log.Error("解析模拟记录失败: %v", err)
		return nil, err
	}
	return records, nil
}

func recentFilter(mode string) bson.M {
	if mode == "" {
		return bson.M{}
	}
	return bson.M{"mode": mode}
}

// ==================== 转换辅助方法 ====================

func runRecordToDoc(record *entity.RunRecord) bson.M {
	return bson.M{
		"_id":           record.ID,
		"run_id":        record.RunID,
		"mode":          record.Mode,
		"shape":         record.Shape,
		"draw_budget":   record.DrawBudget,
		"final_draw":    record.FinalDraw,
		"requested":     record.Requested,
		"trials":        record.Trials,
		"workers":       record.Workers,
		"seed":          record.Seed,
		"successes":     record.Successes,
		"faults":        record.Faults,
		"wall_empty":    record.WallEmpty,
		"success_rate":  record.SuccessRate,
		"distributions": distributionsToBson(record.Distributions),
		"host": bson.M{
			"logical_cpus":    record.Host.LogicalCPUs,
			"total_memory":    int64(record.Host.TotalMemory),
			"memory_used_pct": record.Host.MemoryUsedPct,
			"cpu_used_pct":    record.Host.CPUUsedPct,
		},
		"status":     record.Status,
		"start_time": record.StartTime,
		"duration":   record.Duration,
		"created_at": record.CreatedAt,
	}
}

func distributionsToBson(dists map[string]entity.DistributionRecord) bson.M {
	result := make(bson.M, len(dists))
	for name, d := range dists {
		counts := make(bson.M, len(d.Counts))
		for k, n := range d.Counts {
			counts[k] = n
		}
		result[name] = bson.M{
			"counts": counts,
			"total":  d.Total,
			"sum":    d.Sum,
			"mean":   d.Mean,
		}
	}
	return result
}
