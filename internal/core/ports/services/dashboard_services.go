package services

import (
	"context"

	"github.com/financebook/financebook/internal/core/domain"
	"github.com/financebook/financebook/internal/core/summary"
)

// DashboardSvcFacade exposes the read-only aggregations behind the home
// screen widgets. All of them recompute from the store on every call.
type DashboardSvcFacade interface {
	// BalanceSummary returns the all-time balance and current-month totals.
	BalanceSummary(ctx context.Context, userID string) (summary.BalanceSummary, error)

	// Cashflow returns the fixed 12-bucket series for a year.
	Cashflow(ctx context.Context, userID string, year int) ([]summary.MonthBucket, error)

	// CategoryBreakdown returns the top expense categories, all-time.
	CategoryBreakdown(ctx context.Context, userID string, topN int) ([]summary.CategoryShare, error)

	// RecentTransactions returns the newest records for the activity widget.
	RecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// UpcomingDebts returns the next active payables by due date.
	UpcomingDebts(ctx context.Context, userID string, limit int) ([]domain.Debt, error)
}
