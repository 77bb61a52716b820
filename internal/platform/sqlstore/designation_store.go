package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const designationColumns = `id, user_id, name, created_at, updated_at`

// DesignationStore implements store.DesignationStore.
type DesignationStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewDesignationStore creates a DesignationStore over a connection or transaction.
func NewDesignationStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *DesignationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DesignationStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "designation_store")),
	}
}

var _ store.DesignationStore = (*DesignationStore)(nil)

// Create implements store.DesignationStore.Create.
func (s *DesignationStore) Create(ctx context.Context, d *domain.Designation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		log.Warn("designation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("designation_id", d.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO designations (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.UserID, d.Name, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		log.Error("failed to create designation",
			slog.String("error", err.Error()),
			slog.String("designation_id", d.ID.String()),
			slog.String("user_id", d.UserID.String()))
		return s.dialect.MapError(err)
	}

	log.Debug("designation created",
		slog.String("designation_id", d.ID.String()),
		slog.String("user_id", d.UserID.String()))
	return nil
}

// GetByID implements store.DesignationStore.GetByID.
func (s *DesignationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Designation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := scanDesignation(s.db.QueryRowContext(ctx,
		`SELECT `+designationColumns+` FROM designations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("designation not found", slog.String("designation_id", id.String()))
			return nil, store.ErrDesignationNotFound
		}
		log.Error("failed to get designation",
			slog.String("error", err.Error()),
			slog.String("designation_id", id.String()))
		return nil, s.dialect.MapError(err)
	}
	return d, nil
}

// ListByUser implements store.DesignationStore.ListByUser.
func (s *DesignationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Designation, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM designations WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		log.Error("failed to count designations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, s.dialect.MapError(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+designationColumns+` FROM designations
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list designations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, s.dialect.MapError(err)
	}
	defer func() { _ = rows.Close() }()

	designations := make([]*domain.Designation, 0, page.Limit)
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, 0, s.dialect.MapError(err)
		}
		designations = append(designations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, s.dialect.MapError(err)
	}
	return designations, total, nil
}

// Update implements store.DesignationStore.Update.
func (s *DesignationStore) Update(ctx context.Context, d *domain.Designation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return err
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE designations SET name = $1, updated_at = $2 WHERE id = $3`,
		d.Name, d.UpdatedAt, d.ID)
	if err != nil {
		log.Error("failed to update designation",
			slog.String("error", err.Error()),
			slog.String("designation_id", d.ID.String()))
		return s.dialect.MapError(err)
	}
	return checkRowsAffected(result, store.ErrDesignationNotFound)
}

// Delete implements store.DesignationStore.Delete.
func (s *DesignationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete designation",
			slog.String("error", err.Error()),
			slog.String("designation_id", id.String()))
		return s.dialect.MapError(err)
	}
	return checkRowsAffected(result, store.ErrDesignationNotFound)
}

// WithTx implements store.DesignationStore.WithTx.
func (s *DesignationStore) WithTx(tx *sql.Tx) store.DesignationStore {
	return &DesignationStore{db: tx, dialect: s.dialect, logger: s.logger}
}

func scanDesignation(row rowScanner) (*domain.Designation, error) {
	var d domain.Designation
	err := row.Scan(&d.ID, &d.UserID, &d.Name, scanTime(&d.CreatedAt), scanTime(&d.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &d, nil
}
