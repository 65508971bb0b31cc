package metrics

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBStatsCollector samples the gorm connection pool at a fixed interval.
type DBStatsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	stopCh  chan struct{}
}

func NewDBStatsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *DBStatsCollector {
	return &DBStatsCollector{db: db, metrics: metrics, logger: logger, stopCh: make(chan struct{})}
}

func (c *DBStatsCollector) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				return
			}
		}
	}()
}

func (c *DBStatsCollector) Stop() {
	close(c.stopCh)
}

func (c *DBStatsCollector) collect() {
	sqlDB, err := c.db.DB()
	if err != nil {
		c.logger.Warn("Failed to get underlying DB for stats", zap.Error(err))
		return
	}

	stats := sqlDB.Stats()
	c.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	c.metrics.DBConnectionsIdle.Set(float64(stats.Idle))
}
