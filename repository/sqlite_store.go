package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"calc-hub/domain"
)

type calculationRecord struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"index;size:36;not null"`
	Calculator string    `gorm:"size:64;not null"`
	Input      string    `gorm:"type:text;not null"`
	Result     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"index;not null"`
}

func (calculationRecord) TableName() string { return "calculations" }

type userRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Login        string    `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

// SQLiteStore persists history and users through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// each new connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&calculationRecord{}, &userRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Calculations() CalculationRepository { return &sqliteCalculations{db: s.db} }
func (s *SQLiteStore) Users() UserRepository               { return &sqliteUsers{db: s.db} }

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqliteCalculations struct {
	db *gorm.DB
}

func (r *sqliteCalculations) Save(ctx context.Context, calc *domain.Calculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	rec := calculationRecord{
		ID:         calc.ID,
		UserID:     calc.UserID,
		Calculator: calc.Calculator,
		Input:      string(calc.Input),
		Result:     string(calc.Result),
		CreatedAt:  calc.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	return nil
}

func (r *sqliteCalculations) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Calculation, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recs []calculationRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}

	out := make([]domain.Calculation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *sqliteCalculations) GetByID(ctx context.Context, userID, id string) (domain.Calculation, error) {
	var rec calculationRecord
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Calculation{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("get calculation: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *sqliteCalculations) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&calculationRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete calculation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sqliteCalculations) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&calculationRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge calculations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (rec calculationRecord) toDomain() domain.Calculation {
	return domain.Calculation{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Calculator: rec.Calculator,
		Input:      []byte(rec.Input),
		Result:     []byte(rec.Result),
		CreatedAt:  rec.CreatedAt,
	}
}

type sqliteUsers struct {
	db *gorm.DB
}

func (r *sqliteUsers) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	rec := userRecord{
		ID:           user.ID,
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *sqliteUsers) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return r.first(ctx, "login = ?", login)
}

func (r *sqliteUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *sqliteUsers) first(ctx context.Context, query string, arg any) (domain.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).Where(query, arg).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return domain.User{
		ID:           rec.ID,
		Login:        rec.Login,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}
