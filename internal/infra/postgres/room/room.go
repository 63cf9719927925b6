package infra_postgres_room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/reelmate/core/internal/infra/postgres/notify"
	"github.com/reelmate/core/internal/model"
	usecase_room "github.com/reelmate/core/internal/usecase/room"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	Code    string         `db:"code"`
	OwnerID uuid.UUID      `db:"owner_id"`
	GuestID uuid.NullUUID  `db:"guest_id"`
	Status  string         `db:"status"`
	Filters sql.NullString `db:"filters"`
}

func (d roomDTO) toDomain() (model.Room, error) {
	room := model.Room{
		Code:    d.Code,
		OwnerID: d.OwnerID,
		Status:  d.Status,
	}
	if d.GuestID.Valid {
		guest := d.GuestID.UUID
		room.GuestID = &guest
	}
	if d.Filters.Valid && d.Filters.String != "" {
		if err := json.Unmarshal([]byte(d.Filters.String), &room.Filters); err != nil {
			return model.Room{}, fmt.Errorf("failed to decode filters: %w", err)
		}
	}
	return room, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (d *Driver) Create(ctx context.Context, room model.Room) error {
	filters, err := json.Marshal(room.Filters)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (code, owner_id, status, filters)
		VALUES ($1, $2, $3, $4)
	`

	_, err = d.db.ExecContext(ctx, query, room.Code, room.OwnerID, room.Status, filters)
	if err != nil {
		if isUniqueViolation(err) {
			return usecase_room.ErrCodeConflict
		}
		return err
	}
	return nil
}

func (d *Driver) ByCode(ctx context.Context, code string) (model.Room, error) {
	query := `
		SELECT code, owner_id, guest_id, status, filters
		FROM rooms
		WHERE code = $1
	`

	var dto roomDTO
	if err := d.db.GetContext(ctx, &dto, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, usecase_room.ErrResourceNotFound
		}
		return model.Room{}, err
	}
	return dto.toDomain()
}

// ClaimGuestSlot is the join race's arbiter: the conditional update succeeds
// for exactly one of two simultaneous joins to an empty slot.
func (d *Driver) ClaimGuestSlot(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	query := `
		UPDATE rooms
		SET guest_id = $1, updated_at = now()
		WHERE code = $2 AND guest_id IS NULL
	`

	result, err := d.db.ExecContext(ctx, query, userID, code)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// SetFilters stores the criteria and publishes filters_updated in the same
// transaction, so subscribers never observe the event without the new state.
func (d *Driver) SetFilters(ctx context.Context, code string, criteria model.FilterCriteria) error {
	filters, err := json.Marshal(criteria)
	if err != nil {
		return err
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE rooms
		SET filters = $1, updated_at = now()
		WHERE code = $2
	`

	result, err := tx.ExecContext(ctx, query, filters, code)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}

	if err := notify.Publish(ctx, tx, notify.Event{
		Room: code,
		Type: notify.EventFiltersUpdated,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) FiltersByCode(ctx context.Context, code string) (model.FilterCriteria, error) {
	room, err := d.ByCode(ctx, code)
	if err != nil {
		return model.FilterCriteria{}, err
	}
	return room.Filters, nil
}

func (d *Driver) StatusByCode(ctx context.Context, code string) (string, error) {
	var status string
	err := d.db.GetContext(ctx, &status, `SELECT status FROM rooms WHERE code = $1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", usecase_room.ErrResourceNotFound
		}
		return "", err
	}
	return status, nil
}

func (d *Driver) SetStatusByCode(ctx context.Context, code string, status string) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE rooms SET status = $1, updated_at = now() WHERE code = $2`, status, code)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM rooms WHERE code = $1`, code)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_room.ErrResourceNotFound
	}
	return nil
}
