package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RunStatusCompleted = "completed"
	RunStatusCancelled = "cancelled"
)

// RunRecord 一次批量模拟的结果（聚合根）
type RunRecord struct {
	ID            primitive.ObjectID            `bson:"_id"`
	RunID         string                        `bson:"run_id"`
	Mode          string                        `bson:"mode"`  // shanten / rounds / composition
	Shape         string                        `bson:"shape"` // composition 模式为空
	DrawBudget    int                           `bson:"draw_budget"`
	FinalDraw     bool                          `bson:"final_draw"`
	Requested     int                           `bson:"requested"` // 计划试验次数
	Trials        int64                         `bson:"trials"`    // 实际完成次数
	Workers       int                           `bson:"workers"`
	Seed          int64                         `bson:"seed"`
	Successes     int64                         `bson:"successes"`
	Faults        int64                         `bson:"faults"`
	WallEmpty     int64                         `bson:"wall_empty"`
	SuccessRate   float64                       `bson:"success_rate"`
	Distributions map[string]DistributionRecord `bson:"distributions"`
	Host          HostRecord                    `bson:"host"`
	Status        string                        `bson:"status"`
	StartTime     time.Time                     `bson:"start_time"`
	Duration      int64                         `bson:"duration"` // 毫秒
	CreatedAt     time.Time                     `bson:"created_at"`
}

// DistributionRecord bson 的 map key 只能是字符串
type DistributionRecord struct {
	Counts map[string]int64 `bson:"counts"`
	Total  int64            `bson:"total"`
	Sum    int64            `bson:"sum"`
	Mean   float64          `bson:"mean"`
}

type HostRecord struct {
	LogicalCPUs   int     `bson:"logical_cpus"`
	TotalMemory   uint64  `bson:"total_memory"`
	MemoryUsedPct float64 `bson:"memory_used_pct"`
	CPUUsedPct    float64 `bson:"cpu_used_pct"`
}

func NewRunRecord(runID, mode string) *RunRecord {
	return &RunRecord{
		ID:            primitive.NewObjectID(),
		RunID:         runID,
		Mode:          mode,
		Distributions: make(map[string]DistributionRecord),
		StartTime:     time.Now(),
		CreatedAt:     time.Now(),
	}
}

func (r *RunRecord) Finish(elapsed time.Duration, cancelled bool) {
	r.Duration = elapsed.Milliseconds()
	if cancelled {
		r.Status = RunStatusCancelled
	} else {
		r.Status = RunStatusCompleted
	}
}
