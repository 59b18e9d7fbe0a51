//go:build !integration

package ranking

import (
	"context"
	"foodRanking/domain"
	"sync/atomic"
	"testing"
	"time"
)

func TestSuggestions(t *testing.T) {
	got := Suggestions(domain.VendorScoreInput{StarsAverage: 3.2, OnTimeRate: 70, VolumeScore: 20})
	if len(got) != 3 {
		t.Fatalf("len(Suggestions) = %d, want 3", len(got))
	}

	wantAreas := []string{"ratings", "punctuality", "order_volume"}
	wantImpact := []string{"high", "medium", "low"}
	for i, s := range got {
		if s.Area != wantAreas[i] || s.Impact != wantImpact[i] {
			t.Errorf("suggestion %d = %s/%s, want %s/%s", i, s.Area, s.Impact, wantAreas[i], wantImpact[i])
		}
		if len(s.Actions) == 0 {
			t.Errorf("suggestion %s has no actions", s.Area)
		}
	}

	if got := Suggestions(domain.VendorScoreInput{StarsAverage: 4.8, OnTimeRate: 95, VolumeScore: 80}); len(got) != 0 {
		t.Errorf("strong vendor got %d suggestions", len(got))
	}
}

func TestGetVendorRankingInsights(t *testing.T) {
	repo := newFakeRepo()
	me := repo.addVendor("Me", "")
	repo.ratings[me] = []int{3, 4}
	repo.deliveries[me] = DeliveryStats{Total: 4, OnTime: 4}
	repo.setScore(me, 15)

	for i, s := range []float64{40, 30, 20, 10} {
		id := repo.addVendor(string(rune('A'+i)), "")
		repo.setScore(id, s)
	}

	svc := newTestService(repo, nil)

	got, err := svc.GetVendorRankingInsights(context.Background(), me)
	if err != nil {
		t.Fatalf("GetVendorRankingInsights() error = %v", err)
	}

	if got.Position.Position != 4 || got.Position.TotalVendors != 5 {
		t.Errorf("Position = %+v", got.Position)
	}
	if len(got.Competitors) != 3 || got.Competitors[0].Score != 40 {
		t.Errorf("Competitors = %+v", got.Competitors)
	}
	for _, c := range got.Competitors {
		if c.VendorID == me {
			t.Error("vendor listed as its own competitor")
		}
	}
	if got.Metrics.StarsAverage != 3.5 || got.Metrics.OnTimeRate != 100 {
		t.Errorf("Metrics = %+v", got.Metrics)
	}
	// low stars and no volume; punctuality is fine
	if len(got.Suggestions) != 2 {
		t.Errorf("Suggestions = %+v", got.Suggestions)
	}
}

func TestGetRankingStats(t *testing.T) {
	repo := newFakeRepo()
	for _, s := range []float64{5, 15, 25, 36.2} {
		id := repo.addVendor("V", "")
		repo.setScore(id, s)
	}

	svc := newTestService(repo, nil)

	stats, err := svc.GetRankingStats(context.Background())
	if err != nil {
		t.Fatalf("GetRankingStats() error = %v", err)
	}

	if stats.TotalVendors != 4 {
		t.Errorf("TotalVendors = %d, want 4", stats.TotalVendors)
	}
	if stats.Averages.Score != 20.3 {
		t.Errorf("Averages.Score = %v, want 20.3", stats.Averages.Score)
	}
	if stats.Ranges.Score.Min != 5 || stats.Ranges.Score.Max != 36.2 {
		t.Errorf("Ranges.Score = %+v", stats.Ranges.Score)
	}

	want := map[string]int64{"0-20": 2, "20-40": 2, "40-60": 0, "60-80": 0, "80-100": 0}
	if len(stats.ScoreDistribution) != len(want) {
		t.Fatalf("ScoreDistribution = %+v", stats.ScoreDistribution)
	}
	for _, b := range stats.ScoreDistribution {
		if b.Count != want[b.Range] {
			t.Errorf("bucket %s = %d, want %d", b.Range, b.Count, want[b.Range])
		}
	}
}

type countingRecomputer struct {
	calls atomic.Int32
}

func (c *countingRecomputer) RecomputeAll(context.Context) (domain.RecomputeResult, error) {
	c.calls.Add(1)
	return domain.RecomputeResult{UpdatedCount: 1, Timestamp: time.Now()}, nil
}

func TestDailyJob_StartStop(t *testing.T) {
	rec := &countingRecomputer{}
	job := NewDailyJob(rec, JobConfig{Interval: 10 * time.Millisecond})

	job.Start(context.Background())
	job.Start(context.Background())
	if !job.IsRunning() {
		t.Fatal("job should be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	job.Stop()
	job.Stop()
	if job.IsRunning() {
		t.Error("job should be stopped")
	}
	if rec.calls.Load() < 2 {
		t.Errorf("RecomputeAll called %d times, want at least 2", rec.calls.Load())
	}
}

func TestDailyJob_RunOnStart(t *testing.T) {
	rec := &countingRecomputer{}
	job := NewDailyJob(rec, JobConfig{Interval: time.Hour, RunOnStart: true})

	job.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for rec.calls.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()

	if rec.calls.Load() != 1 {
		t.Errorf("RecomputeAll called %d times, want 1", rec.calls.Load())
	}
}

func TestDailyJob_RunNow(t *testing.T) {
	rec := &countingRecomputer{}
	job := NewDailyJob(rec, JobConfig{})

	result, err := job.RunNow(context.Background())
	if err != nil {
		t.Fatalf("RunNow() error = %v", err)
	}
	if result.UpdatedCount != 1 || rec.calls.Load() != 1 {
		t.Errorf("RunNow() = %+v after %d calls", result, rec.calls.Load())
	}
}
