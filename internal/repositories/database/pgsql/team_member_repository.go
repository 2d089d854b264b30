package pgsql

import (
	"context"
	"errors"

	"github.com/financebook/financebook/internal/apperrors"
	"github.com/financebook/financebook/internal/core/domain"
	portsrepo "github.com/financebook/financebook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTeamMemberRepository struct {
	BaseRepository
}

// newPgxTeamMemberRepository creates a new repository for the team roster.
func newPgxTeamMemberRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TeamRepositoryFacade = (*PgxTeamMemberRepository)(nil)

func (r *PgxTeamMemberRepository) FindTeamMembersByOwner(ctx context.Context, ownerUserID string) ([]domain.TeamMember, error) {
	query := `
		SELECT m.member_id, m.owner_user_id, m.name, m.email, m.role, m.created_at
		FROM team_members m
		WHERE m.owner_user_id = $1
		ORDER BY m.created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query team members", err)
	}
	defer rows.Close()
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TeamMember])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TeamMember{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect team member rows", err)
	}
	return members, nil
}

func (r *PgxTeamMemberRepository) SaveTeamMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		INSERT INTO team_members (member_id, owner_user_id, name, email, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.OwnerUserID,
		member.Name,
		member.Email,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError(member.Email + " is already on the roster")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("owner does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save team member "+member.MemberID, err)
	}
	return nil
}

func (r *PgxTeamMemberRepository) UpdateTeamMemberRole(ctx context.Context, ownerUserID, memberID string, role domain.Role) error {
	query := `
		UPDATE team_members
		SET role = $1
		WHERE member_id = $2 AND owner_user_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, role, memberID, ownerUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for team member "+memberID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team member not found")
	}
	return nil
}

func (r *PgxTeamMemberRepository) DeleteTeamMember(ctx context.Context, ownerUserID, memberID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM team_members WHERE member_id = $1 AND owner_user_id = $2;`, memberID, ownerUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete team member "+memberID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team member not found")
	}
	return nil
}
