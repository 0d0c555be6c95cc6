package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"clientportal/internal/model"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, email, name, role, password_hash, created_at
        FROM users
        WHERE email = $1
    `
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id model.FlexID) (*model.User, error) {
	numID, err := numericID(id)
	if err != nil {
		return nil, pgx.ErrNoRows
	}

	query := `
        SELECT id, email, name, role, password_hash, created_at
        FROM users
        WHERE id = $1
    `
	return r.scanUser(r.db.QueryRow(ctx, query, numID))
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `
        SELECT id, email, name, role, password_hash, created_at
        FROM users
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CreateUser inserts a user and fills in the generated id.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, name, role, password_hash, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	var id int
	err := r.db.QueryRow(ctx, query, u.Email, u.Name, u.Role, u.PasswordHash, u.CreatedAt).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return err
	}

	u.ID = model.FlexID(strconv.Itoa(id))
	r.logger.Info("User created successfully",
		zap.Int("id", id),
		zap.String("role", u.Role),
	)
	return nil
}

func (r *UserRepository) scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var id int
	if err := row.Scan(&id, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ID = model.FlexID(strconv.Itoa(id))
	return &u, nil
}
