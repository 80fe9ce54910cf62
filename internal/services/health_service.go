package services

import (
	"context"
	"time"
)

// Pinger 疎通確認ができる依存先（*sql.DB など）
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthStatus ヘルスステータス
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthService ヘルスチェックに関するサービスインターフェース
type HealthService interface {
	GetStatus(ctx context.Context) *HealthStatus
}

// healthService HealthServiceの実装
type healthService struct {
	db        Pinger
	startTime time.Time
	version   string
}

// NewHealthService HealthServiceを作成
func NewHealthService(db Pinger, version string) HealthService {
	return &healthService{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

// GetStatus サービスのステータスを取得
func (s *healthService) GetStatus(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "ok",
		Database:  "ok",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   s.version,
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if s.db == nil {
		status.Database = "unknown"
	} else if err := s.db.PingContext(ctx); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}

	return status
}
