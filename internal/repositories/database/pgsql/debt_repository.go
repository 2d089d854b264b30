package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

var fullDebtSelectQuery = `
SELECT
	d.debt_id, d.user_id, d.direction, d.counterparty_name, d.description,
	d.amount, d.remaining_amount, d.due_on, d.status, d.version,
	d.created_at, d.last_updated_at
FROM debts d
`

func (r *PgxDebtRepository) getDebts(ctx context.Context, filterQuery string, args ...any) ([]domain.Debt, error) {
	query := fullDebtSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	defer rows.Close()
	debts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Debt])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Debt{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect debt rows", err)
	}
	return debts, nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, userID, debtID string) (*domain.Debt, error) {
	debts, err := r.getDebts(ctx, `WHERE d.debt_id = $1 AND d.user_id = $2`, debtID, userID)
	if err != nil {
		return nil, err
	}
	if len(debts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &debts[0], nil
}

func (r *PgxDebtRepository) FindDebtsByUser(ctx context.Context, userID string, filter portsrepo.DebtFilter) ([]domain.Debt, error) {
	where := `WHERE d.user_id = $1`
	args := []any{userID}

	if filter.Direction != nil {
		args = append(args, *filter.Direction)
		where += fmt.Sprintf(" AND d.direction = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND d.status = $%d", len(args))
	}

	where += " ORDER BY d.due_on ASC, d.created_at ASC"
	return r.getDebts(ctx, where, args...)
}

func (r *PgxDebtRepository) FindUpcomingPayables(ctx context.Context, userID string, limit int) ([]domain.Debt, error) {
	where := `WHERE d.user_id = $1 AND d.direction = $2 AND d.status = $3 ORDER BY d.due_on ASC LIMIT $4`
	return r.getDebts(ctx, where, userID, domain.Payable, domain.DebtActive, limit)
}

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (
			debt_id, user_id, direction, counterparty_name, description,
			amount, remaining_amount, due_on, status, version,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		debt.DebtID,
		debt.UserID,
		debt.Direction,
		debt.CounterpartyName,
		debt.Description,
		debt.Amount,
		debt.RemainingAmount,
		debt.DueOn,
		debt.Status,
		debt.Version,
		debt.CreatedAt,
		debt.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("debt ID " + debt.DebtID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("owner does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save debt "+debt.DebtID, err)
	}
	return nil
}

// ApplySettlement records a settlement atomically: the debt row is updated
// under an optimistic version check and the synthesized cash-flow transaction
// is inserted in the same database transaction, so the ledger and the
// cash-flow history can never disagree.
func (r *PgxDebtRepository) ApplySettlement(ctx context.Context, debt domain.Debt, newRemaining decimal.Decimal, newStatus domain.DebtStatus, cashFlow domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	updateQuery := `
		UPDATE debts
		SET remaining_amount = $1, status = $2, version = version + 1, last_updated_at = $3
		WHERE debt_id = $4 AND user_id = $5 AND version = $6;
	`
	result, err := tx.Exec(ctx, updateQuery,
		newRemaining,
		newStatus,
		cashFlow.CreatedAt,
		debt.DebtID,
		debt.UserID,
		debt.Version,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update debt "+debt.DebtID, err)
	}
	if result.RowsAffected() == 0 {
		// Either the debt vanished or a concurrent settlement bumped the
		// version. Distinguish the two for the caller.
		var exists bool
		checkErr := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM debts WHERE debt_id = $1 AND user_id = $2)`, debt.DebtID, debt.UserID).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to check debt existence", checkErr)
		}
		if !exists {
			return apperrors.NewNotFoundError("debt not found")
		}
		return apperrors.NewConflictError(fmt.Sprintf("debt %s was modified concurrently", debt.DebtID))
	}

	insertQuery := `
		INSERT INTO transactions (
			transaction_id, user_id, amount, kind, category, description,
			occurred_on, receipt_url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		cashFlow.TransactionID,
		cashFlow.UserID,
		cashFlow.Amount,
		cashFlow.Kind,
		cashFlow.Category,
		cashFlow.Description,
		cashFlow.OccurredOn,
		cashFlow.ReceiptURL,
		cashFlow.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record settlement transaction for debt "+debt.DebtID, err)
	}

	return r.Commit(ctx, tx)
}
