package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
	"quiz-forge/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `
		id "id",
		email "email",
		name "name",
		password_hash "password_hash",
		role "role",
		created_at "created_at",
		updated_at "updated_at"`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// CreateUser inserts a new user. A duplicate email fails with domain.ErrDuplicate.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, r.db)
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m := fromDomainUser(user)

	query := exec.Rebind(`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, m.ID, m.Email, m.Name, m.PasswordHash, m.Role, m.CreatedAt, m.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID, or domain.ErrNotFound.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email, or domain.ErrNotFound.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *sqlxUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.User
	query := exec.Rebind(`SELECT` + userColumns + `
	FROM users
	WHERE ` + column + ` = ?`)
	if err := exec.GetContext(ctx, &m, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}

// ListUsersByRole returns users with the given role ordered by name.
func (r *sqlxUserRepository) ListUsersByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.User
	query := exec.Rebind(`SELECT` + userColumns + `
	FROM users
	WHERE role = ?
	ORDER BY name ASC`)
	if err := exec.SelectContext(ctx, &rows, query, string(role)); err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", role, err)
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainUser(&rows[i]))
	}
	return out, nil
}
