package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/megaschedule/megaschedule/internal/apperr"
	"github.com/megaschedule/megaschedule/internal/model"
	"github.com/megaschedule/megaschedule/internal/repository/base"
)

// acceptedPerSlotConstraint is the partial unique index guaranteeing at most
// one accepted assignment per slot.
const acceptedPerSlotConstraint = "class_assignments_one_accepted_per_slot"

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Create persists a new pending assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	query := `
		INSERT INTO class_assignments (student_name, teacher_id, schedule_id, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		assignment.StudentName,
		assignment.TeacherID,
		assignment.ScheduleID,
		assignment.Status,
		assignment.CreatedBy,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

// HasAccepted reports whether the slot already carries an accepted assignment.
func (r *AssignmentRepository) HasAccepted(ctx context.Context, slotID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM class_assignments
			WHERE schedule_id = $1 AND status = 'accepted'
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check accepted assignment: %w", err)
	}

	return exists, nil
}

// CountForSlot counts assignments of any status referencing the slot.
func (r *AssignmentRepository) CountForSlot(ctx context.Context, slotID int64) (int, error) {
	query := `
		SELECT count(*) FROM class_assignments
		WHERE schedule_id = $1
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, slotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count assignments for slot: %w", err)
	}

	return count, nil
}

// Accept transitions a pending assignment owned by teacherID to accepted and
// marks its slot unavailable. Both rows commit in one transaction or not at
// all. Returns nil when no pending assignment matches. A concurrent accept on
// the same slot trips the partial unique index and surfaces as AlreadyAccepted.
func (r *AssignmentRepository) Accept(ctx context.Context, id, teacherID int64, at time.Time) (*model.Assignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE class_assignments
		SET status = 'accepted', accepted_at = $1, updated_at = now()
		WHERE id = $2 AND teacher_id = $3 AND status = 'pending'
		RETURNING id, student_name, teacher_id, schedule_id, status, created_by, accepted_at, created_at, updated_at
	`

	assignment, err := scanAssignmentRow(tx.QueryRow(ctx, query, at, id, teacherID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		if base.IsUniqueViolation(err, acceptedPerSlotConstraint) {
			return nil, apperr.New(apperr.CodeAlreadyAccepted, "schedule already has an accepted class")
		}
		return nil, fmt.Errorf("accept assignment: %w", err)
	}

	slotUpdate := `
		UPDATE schedule_slots
		SET is_available = false, updated_at = now()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, slotUpdate, assignment.ScheduleID); err != nil {
		return nil, fmt.Errorf("mark slot unavailable: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if base.IsUniqueViolation(err, acceptedPerSlotConstraint) {
			return nil, apperr.New(apperr.CodeAlreadyAccepted, "schedule already has an accepted class")
		}
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return assignment, nil
}

// Reject transitions a pending assignment owned by teacherID to rejected.
// Slot availability is untouched. Returns nil when no pending assignment
// matches.
func (r *AssignmentRepository) Reject(ctx context.Context, id, teacherID int64) (*model.Assignment, error) {
	query := `
		UPDATE class_assignments
		SET status = 'rejected', updated_at = now()
		WHERE id = $1 AND teacher_id = $2 AND status = 'pending'
		RETURNING id, student_name, teacher_id, schedule_id, status, created_by, accepted_at, created_at, updated_at
	`

	assignment, err := scanAssignmentRow(r.pool.QueryRow(ctx, query, id, teacherID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reject assignment: %w", err)
	}

	return assignment, nil
}

// ListForTeacher lists a teacher's assignments newest first, optionally
// filtered by status.
func (r *AssignmentRepository) ListForTeacher(ctx context.Context, teacherID int64, status *model.AssignmentStatus) ([]*model.Assignment, error) {
	query := `
		SELECT id, student_name, teacher_id, schedule_id, status, created_by, accepted_at, created_at, updated_at
		FROM class_assignments
		WHERE teacher_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, teacherID, status)
	if err != nil {
		return nil, fmt.Errorf("list assignments by teacher: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListPendingForTeacher lists a teacher's pending assignments oldest first,
// the order they should be decided in.
func (r *AssignmentRepository) ListPendingForTeacher(ctx context.Context, teacherID int64) ([]*model.Assignment, error) {
	query := `
		SELECT id, student_name, teacher_id, schedule_id, status, created_by, accepted_at, created_at, updated_at
		FROM class_assignments
		WHERE teacher_id = $1 AND status = 'pending'
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list pending assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// List lists assignments desk-wide newest first, narrowed by the filter.
func (r *AssignmentRepository) List(ctx context.Context, filter model.AssignmentFilter) ([]*model.Assignment, error) {
	query := `
		SELECT id, student_name, teacher_id, schedule_id, status, created_by, accepted_at, created_at, updated_at
		FROM class_assignments
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::bigint IS NULL OR teacher_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, filter.Status, filter.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// AcceptedWithSlots returns accepted assignments of a teacher whose slot
// starts inside [from, to), each with its slot populated.
func (r *AssignmentRepository) AcceptedWithSlots(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.Assignment, error) {
	query := `
		SELECT a.id, a.student_name, a.teacher_id, a.schedule_id, a.status, a.created_by, a.accepted_at, a.created_at, a.updated_at,
		       s.id, s.teacher_id, s.start_time, s.end_time, s.is_available, s.created_at, s.updated_at
		FROM class_assignments a
		JOIN schedule_slots s ON s.id = a.schedule_id
		WHERE a.teacher_id = $1
		  AND a.status = 'accepted'
		  AND s.start_time >= $2
		  AND s.start_time < $3
	`

	rows, err := r.pool.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list accepted assignments with slots: %w", err)
	}
	defer rows.Close()

	var assignments []*model.Assignment
	for rows.Next() {
		var a model.Assignment
		var s model.ScheduleSlot
		err := rows.Scan(
			&a.ID, &a.StudentName, &a.TeacherID, &a.ScheduleID, &a.Status, &a.CreatedBy, &a.AcceptedAt, &a.CreatedAt, &a.UpdatedAt,
			&s.ID, &s.TeacherID, &s.StartTime, &s.EndTime, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment with slot: %w", err)
		}
		a.Slot = &s
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}

func scanAssignmentRow(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(
		&a.ID,
		&a.StudentName,
		&a.TeacherID,
		&a.ScheduleID,
		&a.Status,
		&a.CreatedBy,
		&a.AcceptedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAssignments(rows pgx.Rows) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	for rows.Next() {
		var a model.Assignment
		err := rows.Scan(
			&a.ID,
			&a.StudentName,
			&a.TeacherID,
			&a.ScheduleID,
			&a.Status,
			&a.CreatedBy,
			&a.AcceptedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}
