package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/financebook/financebook/internal/analytics"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/core/summary"
	"github.com/financebook/financebook/internal/reports"
)

const (
	reportTopCategories   = 5
	reportUpcomingPayable = 5
)

// reportService implements the ReportSvcFacade interface.
type reportService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	debtRepo        portsrepo.DebtRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	analytics       *analytics.Client
}

// ReportServiceOption is a functional option for the report service.
type ReportServiceOption func(*reportService)

// WithReportAnalytics adds the analytics dependency.
func WithReportAnalytics(client *analytics.Client) ReportServiceOption {
	return func(s *reportService) {
		s.analytics = client
	}
}

// NewReportService creates a new report service.
func NewReportService(transactionRepo portsrepo.TransactionRepositoryFacade, debtRepo portsrepo.DebtRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, options ...ReportServiceOption) portssvc.ReportSvcFacade {
	svc := &reportService{
		transactionRepo: transactionRepo,
		debtRepo:        debtRepo,
		userRepo:        userRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) YearlyReport(ctx context.Context, userID string, year int) (*summary.YearlyReport, error) {
	txns, err := s.transactionRepo.FindTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for report",
			slog.String("user_id", userID), slog.Int("year", year))
		return nil, err
	}
	upcoming, err := s.debtRepo.FindUpcomingPayables(ctx, userID, reportUpcomingPayable)
	if err != nil {
		s.LogError(ctx, err, "Failed to load upcoming payables for report",
			slog.String("user_id", userID))
		return nil, err
	}
	return summary.BuildYearlyReport(txns, upcoming, year, reportTopCategories), nil
}

func (s *reportService) businessName(ctx context.Context, userID string) string {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		// The export still renders without a letterhead.
		s.LogDebug(ctx, "Failed to load user for report header", slog.String("user_id", userID))
		return ""
	}
	return user.BusinessName
}

func (s *reportService) ExportPDF(ctx context.Context, userID string, year int) ([]byte, string, error) {
	report, err := s.YearlyReport(ctx, userID, year)
	if err != nil {
		return nil, "", err
	}
	data, err := reports.RenderPDF(report, s.businessName(ctx, userID))
	if err != nil {
		s.LogError(ctx, err, "Failed to render PDF report", slog.Int("year", year))
		return nil, "", err
	}
	if s.analytics != nil {
		s.analytics.Enqueue(userID, analytics.EventReportExported, map[string]any{"format": "pdf", "year": year})
	}
	return data, fmt.Sprintf("laporan-keuangan-%d.pdf", year), nil
}

func (s *reportService) ExportXLSX(ctx context.Context, userID string, year int) ([]byte, string, error) {
	report, err := s.YearlyReport(ctx, userID, year)
	if err != nil {
		return nil, "", err
	}
	data, err := reports.RenderXLSX(report, s.businessName(ctx, userID))
	if err != nil {
		s.LogError(ctx, err, "Failed to render spreadsheet report", slog.Int("year", year))
		return nil, "", err
	}
	if s.analytics != nil {
		s.analytics.Enqueue(userID, analytics.EventReportExported, map[string]any{"format": "xlsx", "year": year})
	}
	return data, fmt.Sprintf("laporan-keuangan-%d.xlsx", year), nil
}
