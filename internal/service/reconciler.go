package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/phrazzld/todo-api/internal/service")

// Reconciler applies bulk item mutations. Update and delete are scoped to the
// caller's own items: ids that are missing or belong to another user are
// dropped and counted, never mutated. Each call is one transaction.
type Reconciler struct {
	db     *sql.DB
	items  store.TodoItemStore
	logger *slog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(db *sql.DB, items store.TodoItemStore, logger *slog.Logger) (*Reconciler, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if items == nil {
		return nil, fmt.Errorf("items store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		db:     db,
		items:  items,
		logger: logger.With(slog.String("component", "reconciler")),
	}, nil
}

// BulkCreate inserts one item per description into listID. It does not check
// ownership of the list; callers authorize the list first.
func (r *Reconciler) BulkCreate(
	ctx context.Context,
	listID uuid.UUID,
	descriptions []string,
) ([]*domain.TodoItem, error) {
	items, err := newItems(listID, descriptions)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	err = store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return r.items.WithTx(tx).CreateMultiple(ctx, items)
	})
	if err != nil {
		return nil, NewServiceError("create_items", "failed to save items", err)
	}
	return items, nil
}

// BulkUpdate applies patches to the caller's items.
//
// Every patch is validated before the database is touched; one bad entry
// rejects the batch. Patches that set no field are ignored, and for an id
// that appears twice the first patch wins. The returned items are the rows as
// persisted, in request order.
func (r *Reconciler) BulkUpdate(
	ctx context.Context,
	userID uuid.UUID,
	patches []domain.ItemPatch,
) (BatchResult[*domain.TodoItem], error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	for i, p := range patches {
		if err := p.Validate(); err != nil {
			return BatchResult[*domain.TodoItem]{}, relabel(err, func(field string) string {
				return fmt.Sprintf("[%d].%s", i, field)
			})
		}
	}

	byID := make(map[uuid.UUID]domain.ItemPatch, len(patches))
	ids := make([]uuid.UUID, 0, len(patches))
	for _, p := range patches {
		if !p.HasChanges() {
			continue
		}
		if _, seen := byID[p.ID]; seen {
			continue
		}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return BatchResult[*domain.TodoItem]{}, nil
	}

	ctx, span := tracer.Start(ctx, "service.Reconciler.BulkUpdate",
		trace.WithAttributes(attribute.Int("ids.requested", len(ids))))
	defer span.End()

	var updated []*domain.TodoItem
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := r.items.WithTx(tx)

		owned, err := txItems.FindOwned(ctx, userID, ids)
		if err != nil {
			return err
		}
		for _, item := range owned {
			item.Apply(byID[item.ID])
		}

		updated, err = txItems.UpdateMultiple(ctx, owned)
		return err
	})
	if err != nil {
		return BatchResult[*domain.TodoItem]{}, NewServiceError("update_items", "failed to update items", err)
	}

	result := BatchResult[*domain.TodoItem]{
		Items:     inRequestOrder(ids, updated),
		Requested: len(ids),
	}
	result.Excluded = result.Requested - len(result.Items)

	span.SetAttributes(attribute.Int("ids.excluded", result.Excluded))
	log.Info("bulk update applied",
		slog.String("user_id", userID.String()),
		slog.Int("requested", result.Requested),
		slog.Int("updated", len(result.Items)),
		slog.Int("excluded", result.Excluded))
	return result, nil
}

// BulkDelete removes the caller's items among ids and reports the ids that
// were actually deleted.
func (r *Reconciler) BulkDelete(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (BatchResult[uuid.UUID], error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	ids = distinct(ids)
	if len(ids) == 0 {
		return BatchResult[uuid.UUID]{}, nil
	}

	ctx, span := tracer.Start(ctx, "service.Reconciler.BulkDelete",
		trace.WithAttributes(attribute.Int("ids.requested", len(ids))))
	defer span.End()

	var deleted []uuid.UUID
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := r.items.WithTx(tx)

		owned, err := txItems.FindOwned(ctx, userID, ids)
		if err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		deleted = make([]uuid.UUID, 0, len(owned))
		for _, item := range owned {
			deleted = append(deleted, item.ID)
		}
		_, err = txItems.DeleteMultiple(ctx, deleted)
		return err
	})
	if err != nil {
		return BatchResult[uuid.UUID]{}, NewServiceError("delete_items", "failed to delete items", err)
	}

	result := BatchResult[uuid.UUID]{
		Items:     deleted,
		Requested: len(ids),
		Excluded:  len(ids) - len(deleted),
	}

	span.SetAttributes(attribute.Int("ids.excluded", result.Excluded))
	log.Info("bulk delete applied",
		slog.String("user_id", userID.String()),
		slog.Int("requested", result.Requested),
		slog.Int("deleted", len(deleted)),
		slog.Int("excluded", result.Excluded))
	return result, nil
}

func newItems(listID uuid.UUID, descriptions []string) ([]*domain.TodoItem, error) {
	items := make([]*domain.TodoItem, 0, len(descriptions))
	for i, desc := range descriptions {
		item, err := domain.NewTodoItem(listID, desc)
		if err != nil {
			return nil, relabel(err, func(string) string { return fmt.Sprintf("[%d]", i) })
		}
		items = append(items, item)
	}
	return items, nil
}

// relabel points a validation error at the offending array element.
func relabel(err error, label func(field string) string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return domain.NewValidationError(label(verr.Field), verr.Message, verr.Err)
	}
	return err
}

func inRequestOrder(ids []uuid.UUID, items []*domain.TodoItem) []*domain.TodoItem {
	byID := make(map[uuid.UUID]*domain.TodoItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]*domain.TodoItem, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
