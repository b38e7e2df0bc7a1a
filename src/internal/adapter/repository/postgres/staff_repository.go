package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

type StaffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, member domain.StaffMember) (domain.StaffMember, error) {
	logger.Info("staff repository create", logger.Fields{
		"username": member.Username,
		"role":     member.Role,
	})

	const query = `
INSERT INTO staff_members (username, role, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, member.Username, member.Role, member.PasswordHash).Scan(&member.ID, &member.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.StaffMember{}, fmt.Errorf("create staff member: %w", domain.ErrDuplicateRecord)
		}
		logger.Error("staff repository create failed", err, logger.Fields{
			"username": member.Username,
			"role":     member.Role,
		})
		return domain.StaffMember{}, fmt.Errorf("create staff member: %w", err)
	}

	member.CreatedAt = member.CreatedAt.UTC()
	return member, nil
}

func (r *StaffRepository) GetByUsername(ctx context.Context, role domain.StaffRole, username string) (domain.StaffMember, error) {
	const query = `
SELECT id, username, role, password_hash, created_at
FROM staff_members
WHERE role = $1 AND username = $2`

	var member domain.StaffMember
	if err := r.db.QueryRowContext(ctx, query, role, username).Scan(
		&member.ID,
		&member.Username,
		&member.Role,
		&member.PasswordHash,
		&member.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StaffMember{}, domain.ErrRecordNotFound
		}
		logger.Error("staff repository get failed", err, logger.Fields{
			"username": username,
			"role":     role,
		})
		return domain.StaffMember{}, fmt.Errorf("get staff member: %w", err)
	}

	member.CreatedAt = member.CreatedAt.UTC()
	return member, nil
}
