// Package stats assembles the dashboard aggregate panel. Every figure whose
// source fetch fails is served as zero with a warning; the landing page never
// shows an error banner for a partial outage.
package stats

import (
	"context"
	"time"

	"aussiemate/models"
	"aussiemate/services/cleaner"
	"aussiemate/services/customer"
	"aussiemate/services/job"
	"aussiemate/services/payment"
	"aussiemate/status"

	"go.uber.org/zap"
)

// Service defines the dashboard stats interface.
type Service interface {
	Dashboard(ctx context.Context) models.DashboardStats
}

// DefaultStatsService implements Service over the domain services.
type DefaultStatsService struct {
	Cleaners  cleaner.Service
	Customers customer.Service
	Jobs      job.Service
	Logger    *zap.Logger
}

func (s *DefaultStatsService) Dashboard(ctx context.Context) models.DashboardStats {
	stats := models.DashboardStats{GeneratedAt: time.Now()}

	stats.KYC = s.Cleaners.KYCStats(ctx)

	if list, err := s.Cleaners.List(ctx, cleaner.ListParams{}); err != nil {
		s.Logger.Warn("dashboard: failed to count cleaners", zap.Error(err))
	} else {
		stats.TotalCleaners = list.Meta.Total
	}

	stats.TotalCustomers = s.Customers.Count(ctx)

	jobs, _, err := s.Jobs.All(ctx)
	if err != nil {
		s.Logger.Warn("dashboard: failed to load jobs", zap.Error(err))
		return stats
	}

	for _, j := range jobs {
		switch status.JobLabel(j.Status) {
		case status.JobUpcoming:
			stats.JobsUpcoming++
		case status.JobOngoing:
			stats.JobsOngoing++
		case status.JobCompleted:
			stats.JobsCompleted++
		case status.JobCancelled:
			stats.JobsCancelled++
		}
	}
	stats.RevenueTotal = payment.RevenueTotal(jobs)
	stats.EscrowHeld = payment.EscrowHeldTotal(jobs)

	return stats
}
