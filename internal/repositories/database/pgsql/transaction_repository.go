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
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

var fullTransactionSelectQuery = `
SELECT
	t.transaction_id, t.user_id, t.amount, t.kind, t.category, t.description,
	t.occurred_on, t.receipt_url, t.created_at
FROM transactions t
`

func (r *PgxTransactionRepository) getTransactions(ctx context.Context, filterQuery string, args ...any) ([]domain.Transaction, error) {
	query := fullTransactionSelectQuery + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Transaction{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect transaction rows", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txns, err := r.getTransactions(ctx, `WHERE t.transaction_id = $1 AND t.user_id = $2`, transactionID, userID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &txns[0], nil
}

func (r *PgxTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	where := `WHERE t.user_id = $1`
	args := []any{userID}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		where += fmt.Sprintf(" AND t.kind = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND t.category = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND t.occurred_on >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND t.occurred_on <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (t.description ILIKE $%d OR t.category ILIKE $%d)", len(args), len(args))
	}

	where += " ORDER BY t.occurred_on DESC, t.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		where += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			where += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	return r.getTransactions(ctx, where, args...)
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, amount, kind, category, description,
			occurred_on, receipt_url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Amount,
		txn.Kind,
		txn.Category,
		txn.Description,
		txn.OccurredOn,
		txn.ReceiptURL,
		txn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("transaction ID " + txn.TransactionID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("owner does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save transaction "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string) error {
	query := `
		UPDATE transactions
		SET receipt_url = $1
		WHERE transaction_id = $2 AND user_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, receiptURL, transactionID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to attach receipt to transaction "+transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}
