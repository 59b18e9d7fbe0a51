//go:build !integration

package ranking

import (
	"bytes"
	"context"
	"errors"
	"foodRanking/domain"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeRepo keeps vendors and their raw signals in memory.
type fakeRepo struct {
	mu sync.Mutex

	vendors    map[uuid.UUID]*domain.Vendor
	ratings    map[uuid.UUID][]int
	deliveries map[uuid.UUID]DeliveryStats
	delivered  map[uuid.UUID]int64
	orders     map[uuid.UUID]uuid.UUID
	reviews    map[uuid.UUID]uuid.UUID

	failReview map[uuid.UUID]error
	listErr    error
	saves      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vendors:    make(map[uuid.UUID]*domain.Vendor),
		ratings:    make(map[uuid.UUID][]int),
		deliveries: make(map[uuid.UUID]DeliveryStats),
		delivered:  make(map[uuid.UUID]int64),
		orders:     make(map[uuid.UUID]uuid.UUID),
		reviews:    make(map[uuid.UUID]uuid.UUID),
		failReview: make(map[uuid.UUID]error),
	}
}

func (r *fakeRepo) addVendor(name string, plan domain.SubscriptionPlan) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	v := &domain.Vendor{ID: id, BusinessName: name, IsActive: true}
	if plan != "" {
		v.Subscription = &domain.Subscription{ID: uuid.New(), VendorID: id, Plan: plan}
	}
	r.vendors[id] = v
	return id
}

func (r *fakeRepo) setScore(id uuid.UUID, score float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vendors[id].RankingScore = score
}

func (r *fakeRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *fakeRepo) vendor(id uuid.UUID) domain.Vendor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.vendors[id]
}

func (r *fakeRepo) FindVendor(_ context.Context, id uuid.UUID) (domain.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return domain.Vendor{}, domain.ErrVendorNotFound
	}
	return *v, nil
}

func (r *fakeRepo) ListActiveVendorIDs(context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := make([]uuid.UUID, 0, len(r.vendors))
	for id, v := range r.vendors {
		if v.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids, nil
}

func (r *fakeRepo) ReviewStats(_ context.Context, id uuid.UUID) (ReviewStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failReview[id]; err != nil {
		return ReviewStats{}, err
	}
	ratings := r.ratings[id]
	if len(ratings) == 0 {
		return ReviewStats{}, nil
	}
	sum := 0
	for _, rt := range ratings {
		sum += rt
	}
	return ReviewStats{Count: int64(len(ratings)), Average: float64(sum) / float64(len(ratings))}, nil
}

func (r *fakeRepo) DeliveryStats(_ context.Context, id uuid.UUID, _, _ time.Time) (DeliveryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deliveries[id], nil
}

func (r *fakeRepo) CountDeliveredOrders(_ context.Context, id uuid.UUID, _, _ time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delivered[id], nil
}

func (r *fakeRepo) SaveScore(_ context.Context, s domain.VendorRankingScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[s.VendorID]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.Stars = s.StarsAverage
	v.OnTimeRate = s.OnTimeRate
	v.VolumeScore = s.VolumeScore
	v.RankingScore = s.Score
	r.saves++
	return nil
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeRepo) FindOrderVendorID(_ context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.orders[orderID]
	if !ok {
		return uuid.Nil, domain.ErrOrderNotFound
	}
	return id, nil
}

func (r *fakeRepo) FindReviewVendorID(_ context.Context, reviewID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.reviews[reviewID]
	if !ok {
		return uuid.Nil, domain.ErrReviewNotFound
	}
	return id, nil
}

func (r *fakeRepo) active() []domain.Vendor {
	out := make([]domain.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		if v.IsActive {
			out = append(out, *v)
		}
	}
	return out
}

func (r *fakeRepo) CountActiveVendors(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.active())), nil
}

func (r *fakeRepo) CountActiveVendorsAbove(_ context.Context, score float64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.active() {
		if v.RankingScore > score {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountActiveVendorsInRange(_ context.Context, min, max float64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.active() {
		if v.RankingScore >= min && v.RankingScore < max {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) TopActiveVendors(_ context.Context, limit int, exclude uuid.UUID) ([]domain.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs := r.active()
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].RankingScore != vs[j].RankingScore {
			return vs[i].RankingScore > vs[j].RankingScore
		}
		return bytes.Compare(vs[i].ID[:], vs[j].ID[:]) < 0
	})
	out := make([]domain.Vendor, 0, limit)
	for _, v := range vs {
		if v.ID == exclude {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeRepo) ScoreSummary(context.Context) (domain.ScoreSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vs := r.active()
	var s domain.ScoreSummary
	s.Count = int64(len(vs))
	if len(vs) == 0 {
		return s, nil
	}
	s.MinScore, s.MaxScore = vs[0].RankingScore, vs[0].RankingScore
	s.MinStars, s.MaxStars = vs[0].Stars, vs[0].Stars
	s.MinOnTimeRate, s.MaxOnTimeRate = vs[0].OnTimeRate, vs[0].OnTimeRate
	for _, v := range vs {
		s.AvgScore += v.RankingScore
		s.AvgStars += v.Stars
		s.AvgOnTimeRate += v.OnTimeRate
		s.AvgVolumeScore += v.VolumeScore
		s.MinScore = min(s.MinScore, v.RankingScore)
		s.MaxScore = max(s.MaxScore, v.RankingScore)
		s.MinStars = min(s.MinStars, v.Stars)
		s.MaxStars = max(s.MaxStars, v.Stars)
		s.MinOnTimeRate = min(s.MinOnTimeRate, v.OnTimeRate)
		s.MaxOnTimeRate = max(s.MaxOnTimeRate, v.OnTimeRate)
	}
	n := float64(len(vs))
	s.AvgScore /= n
	s.AvgStars /= n
	s.AvgOnTimeRate /= n
	s.AvgVolumeScore /= n
	return s, nil
}

// fakeCache records invalidations.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[int][]domain.TopVendor
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int][]domain.TopVendor)}
}

func (c *fakeCache) GetTop(_ context.Context, limit int) ([]domain.TopVendor, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[limit]
	return v, ok, nil
}

func (c *fakeCache) SetTop(_ context.Context, limit int, vs []domain.TopVendor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[limit] = vs
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int][]domain.TopVendor)
	c.invalidated++
	return nil
}

var errStoreDown = domain.NewDataError("review stats", errors.New("connection reset"))
