package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Host         uuid.UUID      `db:"host"`
	Capacity     int            `db:"capacity"`
	Participants pq.StringArray `db:"participants"`
	Version      int64          `db:"version"`
}

func toDTO(room model.Room) roomDTO {
	return roomDTO{
		ID:           room.ID,
		Name:         room.Name,
		Host:         room.Host,
		Capacity:     room.Capacity,
		Participants: idsToArray(room.Participants),
		Version:      room.Version,
	}
}

func (dto roomDTO) toModel() (model.Room, error) {
	participants, err := arrayToIDs(dto.Participants)
	if err != nil {
		return model.Room{}, fmt.Errorf("room %s: %w", dto.ID, err)
	}
	return model.Room{
		ID:           dto.ID,
		Name:         dto.Name,
		Host:         dto.Host,
		Capacity:     dto.Capacity,
		Participants: participants,
		Version:      dto.Version,
	}, nil
}

func (d *Driver) Create(ctx context.Context, room model.Room) error {
	query := `
		INSERT INTO rooms (id, name, host, capacity, participants, version)
		VALUES (:id, :name, :host, :capacity, :participants, :version)
	`

	_, err := d.db.NamedExecContext(ctx, query, toDTO(room))
	return err
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.Room, error) {
	var room roomDTO

	query := `
		SELECT id, name, host, capacity, participants, version
		FROM rooms
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, usecase_membership.ErrResourceNotFound
		}
		return model.Room{}, err
	}

	return room.toModel()
}

func (d *Driver) ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Room, error) {
	var rooms []roomDTO

	query := `
		SELECT id, name, host, capacity, participants, version
		FROM rooms
		WHERE id = ANY($1::uuid[])
	`

	if err := d.db.SelectContext(ctx, &rooms, query, idsToArray(ids)); err != nil {
		return nil, err
	}

	return toModels(rooms)
}

func (d *Driver) List(ctx context.Context) ([]model.Room, error) {
	var rooms []roomDTO

	query := `
		SELECT id, name, host, capacity, participants, version
		FROM rooms
		ORDER BY created_at, id
	`

	if err := d.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}

	return toModels(rooms)
}

// Update writes the room only if nobody has written it since room.Version
// was read.
func (d *Driver) Update(ctx context.Context, room model.Room) (model.Room, error) {
	query := `
		UPDATE rooms
		SET name = $1, host = $2, capacity = $3, participants = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`

	result, err := d.db.ExecContext(ctx, query,
		room.Name,
		room.Host,
		room.Capacity,
		idsToArray(room.Participants),
		room.ID,
		room.Version,
	)
	if err != nil {
		return model.Room{}, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Room{}, err
	}

	if rowsAffected == 0 {
		exists, err := d.exists(ctx, room.ID)
		if err != nil {
			return model.Room{}, err
		}
		if !exists {
			return model.Room{}, usecase_membership.ErrResourceNotFound
		}
		return model.Room{}, usecase_membership.ErrVersionConflict
	}

	room = room.Clone()
	room.Version++
	return room, nil
}

func (d *Driver) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`

	var exists bool
	if err := d.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

func toModels(dtos []roomDTO) ([]model.Room, error) {
	rooms := make([]model.Room, 0, len(dtos))
	for _, dto := range dtos {
		room, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func idsToArray(ids []uuid.UUID) pq.StringArray {
	arr := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		arr = append(arr, id.String())
	}
	return arr
}

func arrayToIDs(arr pq.StringArray) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(arr))
	for _, s := range arr {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
