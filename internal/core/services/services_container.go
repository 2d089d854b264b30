package services

import (
	"github.com/financebook/financebook/internal/analytics"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	portssvc "github.com/financebook/financebook/internal/core/ports/services"
	"github.com/financebook/financebook/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fileStore portsrepo.FileStore, analyticsClient *analytics.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionFileStore(fileStore),
		WithTransactionAnalytics(analyticsClient),
	)
	container.Debt = NewDebtService(
		repos.DebtRepo,
		WithDebtAnalytics(analyticsClient),
	)
	container.Dashboard = NewDashboardService(repos.TransactionRepo, repos.DebtRepo)
	container.Report = NewReportService(
		repos.TransactionRepo,
		repos.DebtRepo,
		repos.UserRepo,
		WithReportAnalytics(analyticsClient),
	)
	container.User = NewUserService(
		repos.UserRepo,
		WithUserFileStore(fileStore),
		WithUserAnalytics(analyticsClient),
	)
	container.Team = NewTeamService(repos.TeamRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	return container
}
