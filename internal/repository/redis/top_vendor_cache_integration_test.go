//go:build integration

package redis

import (
	"context"
	"foodRanking/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestTopVendorCache_RoundTripAndInvalidate(t *testing.T) {
	client := setupRedis(t)
	cache := NewTopVendorCache(client, time.Minute)
	ctx := context.Background()

	if _, ok, err := cache.GetTop(ctx, 10); err != nil || ok {
		t.Fatalf("GetTop() on empty cache = ok %v err %v", ok, err)
	}

	vendors := []domain.TopVendor{
		{Position: 1, VendorID: uuid.New(), BusinessName: "Satay King", Score: 36.2, Plan: domain.PlanPro},
		{Position: 2, VendorID: uuid.New(), BusinessName: "Mee Goreng", Score: 20.1, Plan: domain.PlanFree},
	}
	if err := cache.SetTop(ctx, 10, vendors); err != nil {
		t.Fatalf("SetTop() error = %v", err)
	}
	if err := cache.SetTop(ctx, 5, vendors[:1]); err != nil {
		t.Fatalf("SetTop() error = %v", err)
	}

	got, ok, err := cache.GetTop(ctx, 10)
	if err != nil || !ok {
		t.Fatalf("GetTop() = ok %v err %v", ok, err)
	}
	if len(got) != 2 || got[0].VendorID != vendors[0].VendorID || got[0].Score != 36.2 {
		t.Errorf("GetTop() = %+v", got)
	}

	ttl, err := client.TTL(ctx, topKey(10)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v err %v", ttl, err)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	for _, limit := range []int{5, 10} {
		if _, ok, _ := cache.GetTop(ctx, limit); ok {
			t.Errorf("limit %d still cached after Invalidate", limit)
		}
	}
}
