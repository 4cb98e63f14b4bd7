package database

import (
	"context"
	"fmt"
	"log"
	"time"
)

// PoolStats is a snapshot of connection pool metrics, used by the
// health endpoint and the pool monitor.
type PoolStats struct {
	AcquiredConns int32 `json:"acquired_conns"`
	IdleConns     int32 `json:"idle_conns"`
	TotalConns    int32 `json:"total_conns"`
	MaxConns      int32 `json:"max_conns"`

	// Lifetime counters
	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"-"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
	EmptyAcquireCount    int64         `json:"empty_acquire_count"`
	NewConnsCount        int64         `json:"new_conns_count"`
}

// Stats returns a consistent snapshot of the pool statistics.
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns: raw.AcquiredConns(),
		IdleConns:     raw.IdleConns(),
		TotalConns:    raw.TotalConns(),
		MaxConns:      raw.MaxConns(),

		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		EmptyAcquireCount:    raw.EmptyAcquireCount(),
		NewConnsCount:        raw.NewConnsCount(),
	}, nil
}

// MonitorPoolHealth logs pool pressure warnings until ctx is done.
// Run it in its own goroutine.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Printf("[MONITOR] Failed to get stats: %v", err)
				continue
			}

			utilizationPct := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100
			if utilizationPct > 80 {
				log.Printf("[MONITOR] HIGH POOL UTILIZATION: %.1f%% (%d/%d)",
					utilizationPct, stats.AcquiredConns, stats.MaxConns)
			}

			if stats.AcquireCount > 0 {
				avgAcquire := stats.AcquireDuration / time.Duration(stats.AcquireCount)
				if avgAcquire > 100*time.Millisecond {
					log.Printf("[MONITOR] HIGH ACQUIRE LATENCY: %v", avgAcquire)
				}

				cancelRate := float64(stats.CanceledAcquireCount) / float64(stats.AcquireCount) * 100
				if cancelRate > 5 {
					log.Printf("[MONITOR] HIGH CANCEL RATE: %.1f%%", cancelRate)
				}
			}

		case <-ctx.Done():
			log.Println("[MONITOR] Stopping pool health monitoring")
			return
		}
	}
}
