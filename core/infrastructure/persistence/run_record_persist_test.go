package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"mahjongsim/core/domain/entity"
	"mahjongsim/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRunRecordToDoc(t *testing.T) {
	record := entity.NewRunRecord("run-1", "rounds")
	record.Shape = "spaced7"
	record.DrawBudget = 20
	record.Trials = 1000
	record.Successes = 12
	record.Host.TotalMemory = 8 << 30
	record.Host.CPUUsedPct = 37.5
	record.Distributions["draws"] = entity.DistributionRecord{
		Counts: map[string]int64{"18": 5, "20": 7},
		Total:  12,
		Sum:    230,
		Mean:   230.0 / 12,
	}
	record.Finish(1500*time.Millisecond, false)

	doc := runRecordToDoc(record)
	if doc["_id"] != record.ID || doc["run_id"] != "run-1" || doc["mode"] != "rounds" {
		t.Fatalf("unexpected identity fields: %v", doc)
	}
	if doc["status"] != entity.RunStatusCompleted || doc["duration"] != int64(1500) {
		t.Fatalf("expected completed in 1500ms, got %v / %v", doc["status"], doc["duration"])
	}
	draws, ok := doc["distributions"].(bson.M)["draws"].(bson.M)
	if !ok {
		t.Fatalf("draws distribution missing: %v", doc["distributions"])
	}
	if draws["total"] != int64(12) || draws["counts"].(bson.M)["20"] != int64(7) {
		t.Fatalf("unexpected draws doc: %v", draws)
	}
	host := doc["host"].(bson.M)
	if host["total_memory"] != int64(8<<30) || host["cpu_used_pct"] != 37.5 {
		t.Fatalf("unexpected host doc: %v", doc["host"])
	}
}

func TestRunRecordDoc_RoundTripsThroughBSON(t *testing.T) {
	record := entity.NewRunRecord("run-2", "shanten")
	record.Distributions["distance"] = entity.DistributionRecord{Counts: map[string]int64{"3": 2}, Total: 2, Sum: 6, Mean: 3}
	record.Finish(time.Second, true)

	raw, err := bson.Marshal(runRecordToDoc(record))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got entity.RunRecord
	if err := bson.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID != "run-2" || got.Status != entity.RunStatusCancelled {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Distributions["distance"].Counts["3"] != 2 {
		t.Fatalf("distribution lost: %+v", got.Distributions)
	}
}

func TestRecentFilter(t *testing.T) {
	if len(recentFilter("")) != 0 {
		t.Fatalf("empty mode must not filter")
	}
	if recentFilter("rounds")["mode"] != "rounds" {
		t.Fatalf("expected mode filter")
	}
}

func TestFindRecentRunRecords_RejectsNonPositiveLimit(t *testing.T) {
	repo := NewRunRecordRepository(nil)
	for _, limit := range []int{0, -3} {
		if _, err := repo.FindRecentRunRecords(context.Background(), "", limit); !errors.Is(err, repository.ErrInvalidQuery) {
			t.Fatalf("limit %d: expected ErrInvalidQuery, got %v", limit, err)
		}
	}
}
