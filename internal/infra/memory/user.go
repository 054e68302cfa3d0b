package infra_memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	usecase_user "github.com/humanbelnik/roomsync/core/internal/usecase/user"
)

type Users struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]model.User
	byUsername map[string]uuid.UUID
	order      []uuid.UUID
}

func NewUsers() *Users {
	return &Users{
		users:      make(map[uuid.UUID]model.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (d *Users) Create(ctx context.Context, user model.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byUsername[user.Username]; taken {
		return usecase_user.ErrUsernameTaken
	}
	user.Rooms = slices.Clone(user.Rooms)
	d.users[user.ID] = user
	d.byUsername[user.Username] = user.ID
	d.order = append(d.order, user.ID)
	return nil
}

func (d *Users) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[id]
	if !ok {
		return model.User{}, usecase_membership.ErrResourceNotFound
	}
	user.Rooms = slices.Clone(user.Rooms)
	return user, nil
}

func (d *Users) ByUsername(ctx context.Context, username string) (model.User, error) {
	d.mu.RLock()
	id, ok := d.byUsername[username]
	d.mu.RUnlock()
	if !ok {
		return model.User{}, usecase_membership.ErrResourceNotFound
	}
	return d.ByID(ctx, id)
}

func (d *Users) List(ctx context.Context) ([]model.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]model.User, 0, len(d.order))
	for _, id := range d.order {
		user := d.users[id]
		user.Rooms = slices.Clone(user.Rooms)
		users = append(users, user)
	}
	return users, nil
}

func (d *Users) AddRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[userID]
	if !ok {
		return usecase_membership.ErrResourceNotFound
	}
	if !user.InRoom(roomID) {
		user.Rooms = append(slices.Clone(user.Rooms), roomID)
		d.users[userID] = user
	}
	return nil
}

func (d *Users) RemoveRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[userID]
	if !ok {
		return usecase_membership.ErrResourceNotFound
	}
	user.Rooms = slices.DeleteFunc(slices.Clone(user.Rooms), func(id uuid.UUID) bool {
		return id == roomID
	})
	d.users[userID] = user
	return nil
}
