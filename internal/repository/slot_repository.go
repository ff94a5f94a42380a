package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-ops/uniadmin-api/internal/models"
)

// SlotRepository reads the slot catalogue.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs the repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// List returns all slots ordered by start time.
func (r *SlotRepository) List(ctx context.Context) ([]models.Slot, error) {
	const query = `
SELECT id, name, start_time, end_time, slot_type, created_at
FROM slots
ORDER BY start_time ASC, name ASC`
	var slots []models.Slot
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &slots, query); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	for i := range slots {
		slots[i].ApplyTypeDefaults()
	}
	return slots, nil
}

// FindByID loads one slot.
func (r *SlotRepository) FindByID(ctx context.Context, id string) (*models.Slot, error) {
	const query = `SELECT id, name, start_time, end_time, slot_type, created_at FROM slots WHERE id = $1`
	var slot models.Slot
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &slot, query, id); err != nil {
		return nil, err
	}
	slot.ApplyTypeDefaults()
	return &slot, nil
}
