package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/megaschedule/megaschedule/internal/model"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create persists a new slot.
func (r *SlotRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (teacher_id, start_time, end_time, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.TeacherID,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID gets a slot by ID. Returns nil when no row matches.
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	query := `
		SELECT id, teacher_id, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_slots
		WHERE id = $1
	`

	var slot model.ScheduleSlot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// ListByTeacher lists all slots of a teacher ordered by start time.
func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT id, teacher_id, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_slots
		WHERE teacher_id = $1
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListAvailableByTeacher lists a teacher's bookable slots, optionally bounded
// by the window, ordered by start time.
func (r *SlotRepository) ListAvailableByTeacher(ctx context.Context, teacherID int64, window model.SlotWindow) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT id, teacher_id, start_time, end_time, is_available, created_at, updated_at
		FROM schedule_slots
		WHERE teacher_id = $1
		  AND is_available = true
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR end_time <= $3)
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, teacherID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Delete removes a slot owned by teacherID. Returns false when no such slot
// exists. The FK on class_assignments restricts deletion of referenced slots;
// callers check references first for a precise error.
func (r *SlotRepository) Delete(ctx context.Context, slotID, teacherID int64) (bool, error) {
	query := `
		DELETE FROM schedule_slots
		WHERE id = $1 AND teacher_id = $2
	`

	result, err := r.pool.Exec(ctx, query, slotID, teacherID)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func scanSlots(rows pgx.Rows) ([]*model.ScheduleSlot, error) {
	var slots []*model.ScheduleSlot
	for rows.Next() {
		var slot model.ScheduleSlot
		err := rows.Scan(
			&slot.ID,
			&slot.TeacherID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsAvailable,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}
