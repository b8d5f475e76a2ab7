package platform

import (
	"context"
	"net/url"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// AnalyticsClient wraps the backend's reporting endpoints.
type AnalyticsClient struct {
	core *Client
}

// NewAnalyticsClient builds the analytics resource client.
func NewAnalyticsClient(core *Client) *AnalyticsClient {
	return &AnalyticsClient{core: core}
}

// RevenueSummary fetches aggregated revenue for a period such as "2026" or
// "2026-08".
func (a *AnalyticsClient) RevenueSummary(ctx context.Context, period string) (*domain.RevenueSummary, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	var summary domain.RevenueSummary
	if err := a.core.get(ctx, "analytics", "/api/analytics/revenue", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DashboardStats fetches the landing dashboard counters.
func (a *AnalyticsClient) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := a.core.get(ctx, "analytics", "/api/analytics/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
