package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// Reporting covers the analytics endpoints.
type Reporting interface {
	RevenueSummary(ctx context.Context, period string) (*domain.RevenueSummary, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

const (
	cacheNamespaceAnalytics = "analytics"
	analyticsCacheTTL       = 5 * time.Minute
)

// AnalyticsService serves the revenue and dashboard views, caching
// aggregates since they are expensive for the backend to compute.
type AnalyticsService struct {
	reporting Reporting
	cache     Cache
	logger    *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(reporting Reporting, cache Cache, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{reporting: reporting, cache: cache, logger: logger}
}

// Revenue fetches the revenue summary for a period.
func (s *AnalyticsService) Revenue(ctx context.Context, period string) (*domain.RevenueSummary, error) {
	key := "revenue:" + period

	var cached domain.RevenueSummary
	if s.cache != nil && s.cache.GetJSON(ctx, cacheNamespaceAnalytics, key, &cached) {
		return &cached, nil
	}

	summary, err := s.reporting.RevenueSummary(ctx, period)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheNamespaceAnalytics, key, summary, analyticsCacheTTL)
	}
	return summary, nil
}

// Dashboard fetches the landing dashboard counters.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	const key = "dashboard"

	var cached domain.DashboardStats
	if s.cache != nil && s.cache.GetJSON(ctx, cacheNamespaceAnalytics, key, &cached) {
		return &cached, nil
	}

	stats, err := s.reporting.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheNamespaceAnalytics, key, stats, analyticsCacheTTL)
	}
	return stats, nil
}

// Warm refreshes the dashboard and current-month revenue caches. Called by
// the background warmer so the first console load of the day is fast.
func (s *AnalyticsService) Warm(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if stats, err := s.reporting.DashboardStats(ctx); err == nil {
		s.cache.SetJSON(ctx, cacheNamespaceAnalytics, "dashboard", stats, analyticsCacheTTL)
	} else {
		s.logger.Warn("dashboard warm failed", zap.Error(err))
	}

	period := time.Now().Format("2006-01")
	if summary, err := s.reporting.RevenueSummary(ctx, period); err == nil {
		s.cache.SetJSON(ctx, cacheNamespaceAnalytics, "revenue:"+period, summary, analyticsCacheTTL)
	} else {
		s.logger.Warn("revenue warm failed", zap.String("period", period), zap.Error(err))
	}
}
