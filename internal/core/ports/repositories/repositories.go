package repositories

import (
	"context"
	"io"
)

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	DebtRepo        DebtRepositoryFacade
	UserRepo        UserRepositoryFacade
	TeamRepo        TeamRepositoryFacade
}

// FileStore abstracts binary object storage for receipts and avatars.
// Save streams the content and returns the public URL it will be served
// from.
type FileStore interface {
	Save(ctx context.Context, kind string, filename string, content io.Reader) (string, error)
}
