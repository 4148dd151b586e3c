package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"calc-hub/domain"
)

const uniqueViolation = "23505"

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		login         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS calculations (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		calculator TEXT NOT NULL,
		input      JSONB NOT NULL,
		result     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS calculations_user_created_idx ON calculations (user_id, created_at DESC)`,
}

// PostgresStore talks to PostgreSQL through database/sql and the pgx driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects, checks the connection and creates missing tables.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Fail fast
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	store := NewPostgresStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Calculations() CalculationRepository { return &postgresCalculations{db: s.db} }
func (s *PostgresStore) Users() UserRepository               { return &postgresUsers{db: s.db} }
func (s *PostgresStore) Ping(ctx context.Context) error      { return s.db.PingContext(ctx) }
func (s *PostgresStore) Close() error                        { return s.db.Close() }

type postgresCalculations struct {
	db *sql.DB
}

func (r *postgresCalculations) Save(ctx context.Context, calc *domain.Calculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO calculations (id, user_id, calculator, input, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		calc.ID, calc.UserID, calc.Calculator, []byte(calc.Input), []byte(calc.Result), calc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

func (r *postgresCalculations) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Calculation, error) {
	// LIMIT NULL returns every row
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	const query = `
		SELECT id, user_id, calculator, input, result, created_at
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	out := []domain.Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return out, nil
}

func (r *postgresCalculations) GetByID(ctx context.Context, userID, id string) (domain.Calculation, error) {
	const query = `
		SELECT id, user_id, calculator, input, result, created_at
		FROM calculations
		WHERE id = $1 AND user_id = $2
	`
	c, err := scanCalculation(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Calculation{}, domain.ErrNotFound
	}
	return c, err
}

func (r *postgresCalculations) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresCalculations) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge calculations: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (domain.Calculation, error) {
	var c domain.Calculation
	var input, result []byte
	err := row.Scan(&c.ID, &c.UserID, &c.Calculator, &input, &result, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Calculation{}, err
	}
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("failed to scan calculation: %w", err)
	}
	c.Input = input
	c.Result = result
	return c, nil
}

type postgresUsers struct {
	db *sql.DB
}

func (r *postgresUsers) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO users (id, login, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Login, user.PasswordHash, user.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUsers) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return r.get(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE login = $1`, login)
}

func (r *postgresUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, `SELECT id, login, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *postgresUsers) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
