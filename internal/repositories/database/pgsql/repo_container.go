package pgsql

import (
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	teamRepo := newPgxTeamMemberRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		DebtRepo:        debtRepo,
		UserRepo:        userRepo,
		TeamRepo:        teamRepo,
	}
}
