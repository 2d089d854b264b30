package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/summary"
)

// dashboardService implements the DashboardSvcFacade interface. Every call
// recomputes from the store so the widgets always reflect the latest writes.
type dashboardService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	debtRepo        portsrepo.DebtRepositoryFacade
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(transactionRepo portsrepo.TransactionRepositoryFacade, debtRepo portsrepo.DebtRepositoryFacade) portssvc.DashboardSvcFacade {
	return &dashboardService{
		transactionRepo: transactionRepo,
		debtRepo:        debtRepo,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) allTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.FindTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for dashboard", slog.String("user_id", userID))
		return nil, err
	}
	return txns, nil
}

func (s *dashboardService) BalanceSummary(ctx context.Context, userID string) (summary.BalanceSummary, error) {
	txns, err := s.allTransactions(ctx, userID)
	if err != nil {
		return summary.BalanceSummary{}, err
	}
	return summary.Balance(txns, time.Now()), nil
}

func (s *dashboardService) Cashflow(ctx context.Context, userID string, year int) ([]summary.MonthBucket, error) {
	txns, err := s.allTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summary.MonthlySeries(txns, year), nil
}

func (s *dashboardService) CategoryBreakdown(ctx context.Context, userID string, topN int) ([]summary.CategoryShare, error) {
	txns, err := s.allTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summary.CategoryBreakdown(txns, topN), nil
}

func (s *dashboardService) RecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.FindTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{Limit: limit})
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *dashboardService) UpcomingDebts(ctx context.Context, userID string, limit int) ([]domain.Debt, error) {
	debts, err := s.debtRepo.FindUpcomingPayables(ctx, userID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load upcoming debts", slog.String("user_id", userID))
		return nil, err
	}
	if debts == nil {
		debts = []domain.Debt{}
	}
	return debts, nil
}
