package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
)

// UserReadRepository reads user records from Postgres. Every call runs its
// own query; rows are never cached in process.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

const userColumns = `id, user_id, user_name, password_hash, email, date_of_birth, height_cm, weight_kg, gender, blood_group, created_at`

// FindByID looks a record up by its login identifier. A miss returns
// (nil, nil); only driver failures surface as errors.
func (r *UserReadRepository) FindByID(ctx context.Context, userID string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByName looks a record up by user_name, the registration uniqueness
// key. Same miss semantics as FindByID.
func (r *UserReadRepository) FindByName(ctx context.Context, userName string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_name = $1
		ORDER BY created_at
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userName)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userName},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByRecordID looks a record up by its surrogate primary key, the
// identity carried in session tokens.
func (r *UserReadRepository) FindByRecordID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository appends user records. The table is append-only at
// record granularity: no update or delete, no upsert. Duplicate detection
// belongs to the registrar, not the store.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Append inserts a new row. It never conflicts on user_id or user_name;
// the database serializes concurrent inserts.
func (r *UserWriteRepository) Append(ctx context.Context, user models.UserDB) error {
	query := `
		INSERT INTO users (user_id, user_name, password_hash, email, date_of_birth, height_cm, weight_kg, gender, blood_group, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	args := []any{
		user.UserID, user.UserName, user.PasswordHash, user.Email,
		user.DateOfBirth, user.HeightCm, user.WeightKg, user.Gender, user.BloodGroup,
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.UserID, user.UserName, user.Email},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
