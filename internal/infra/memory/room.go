package infra_memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
)

// Rooms is a single-process room store. Update is a compare-and-set on
// the room version, same contract as the postgres driver.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]model.Room
	order []uuid.UUID
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms: make(map[uuid.UUID]model.Room),
	}
}

func (d *Rooms) Create(ctx context.Context, room model.Room) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.rooms[room.ID]; exists {
		return usecase_membership.ErrVersionConflict
	}
	d.rooms[room.ID] = room.Clone()
	d.order = append(d.order, room.ID)
	return nil
}

func (d *Rooms) ByID(ctx context.Context, id uuid.UUID) (model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room, ok := d.rooms[id]
	if !ok {
		return model.Room{}, usecase_membership.ErrResourceNotFound
	}
	return room.Clone(), nil
}

func (d *Rooms) ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rooms := make([]model.Room, 0, len(ids))
	for _, id := range ids {
		if room, ok := d.rooms[id]; ok {
			rooms = append(rooms, room.Clone())
		}
	}
	return rooms, nil
}

func (d *Rooms) List(ctx context.Context) ([]model.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rooms := make([]model.Room, 0, len(d.order))
	for _, id := range d.order {
		rooms = append(rooms, d.rooms[id].Clone())
	}
	return rooms, nil
}

func (d *Rooms) Update(ctx context.Context, room model.Room) (model.Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, ok := d.rooms[room.ID]
	if !ok {
		return model.Room{}, usecase_membership.ErrResourceNotFound
	}
	if stored.Version != room.Version {
		return model.Room{}, usecase_membership.ErrVersionConflict
	}

	room = room.Clone()
	room.Version++
	d.rooms[room.ID] = room
	return room.Clone(), nil
}
