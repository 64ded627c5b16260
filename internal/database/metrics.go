package database

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dbOpenConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskboard_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
		[]string{"driver"},
	)

	dbIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskboard_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
		[]string{"driver"},
	)

	dbInUseConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taskboard_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
		[]string{"driver"},
	)
)

// RecordPoolMetrics publishes the current pool gauges once.
func (p *DatabasePool) RecordPoolMetrics() {
	if p.DB == nil {
		return
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return
	}

	stats := sqlDB.Stats()
	driver := p.Driver()
	dbOpenConns.WithLabelValues(driver).Set(float64(stats.OpenConnections))
	dbIdleConns.WithLabelValues(driver).Set(float64(stats.Idle))
	dbInUseConns.WithLabelValues(driver).Set(float64(stats.InUse))
}

// CollectPoolMetrics refreshes the pool gauges every interval until ctx is done.
func (p *DatabasePool) CollectPoolMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.RecordPoolMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.RecordPoolMetrics()
		}
	}
}
