package usecase_membership_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	infra_memory "github.com/humanbelnik/roomsync/core/internal/infra/memory"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type MembershipScenarioSuite struct {
	suite.Suite
}

type world struct {
	usecase *usecase_membership.Usecase
	rooms   *infra_memory.Rooms
	users   *infra_memory.Users
	ctx     context.Context
}

func newWorld(maxAttempts int) *world {
	rooms := infra_memory.NewRooms()
	users := infra_memory.NewUsers()
	return &world{
		usecase: usecase_membership.New(rooms, users, nil, 5, maxAttempts),
		rooms:   rooms,
		users:   users,
		ctx:     context.Background(),
	}
}

func (w *world) user(t require.TestingT, username string) model.User {
	u := model.User{ID: uuid.New(), Username: username}
	require.NoError(t, w.users.Create(w.ctx, u))
	return u
}

func (w *world) profile(t require.TestingT, id uuid.UUID) model.User {
	u, err := w.users.ByID(w.ctx, id)
	require.NoError(t, err)
	return u
}

func (s *MembershipScenarioSuite) TestRoomLifecycle(t provider.T) {
	w := newWorld(3)
	u1, u2, u3 := w.user(t, "u1"), w.user(t, "u2"), w.user(t, "u3")

	var roomID uuid.UUID

	t.WithNewStep("Create room", func(sCtx provider.StepCtx) {
		res, err := w.usecase.CreateRoom(w.ctx, u1.ID, "standup", 2)
		require.NoError(t, err)
		roomID = res.Room.ID

		assert.Equal(t, model.OutcomeCreated, res.Outcome)
		assert.Equal(t, u1.ID, res.Room.Host)
		assert.Equal(t, []uuid.UUID{u1.ID}, res.Room.Participants)
		assert.Equal(t, 2, res.Room.Capacity)
		assert.Equal(t, []uuid.UUID{roomID}, w.profile(t, u1.ID).Rooms)
	})

	t.WithNewStep("Join until full", func(sCtx provider.StepCtx) {
		res, err := w.usecase.JoinRoom(w.ctx, u2.ID, roomID)
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeJoined, res.Outcome)
		assert.Equal(t, []uuid.UUID{u1.ID, u2.ID}, res.Room.Participants)

		_, err = w.usecase.JoinRoom(w.ctx, u3.ID, roomID)
		assert.ErrorIs(t, err, usecase_membership.ErrCapacityExceeded)

		room, err := w.usecase.GetRoom(w.ctx, roomID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{u1.ID, u2.ID}, room.Participants)
		assert.Empty(t, w.profile(t, u3.ID).Rooms)
	})

	t.WithNewStep("Joining twice is reported, not applied", func(sCtx provider.StepCtx) {
		before, err := w.usecase.GetRoom(w.ctx, roomID)
		require.NoError(t, err)

		res, err := w.usecase.JoinRoom(w.ctx, u2.ID, roomID)
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeAlreadyMember, res.Outcome)
		assert.Equal(t, before.Version, res.Room.Version)
	})

	t.WithNewStep("Leave twice", func(sCtx provider.StepCtx) {
		res, err := w.usecase.LeaveRoom(w.ctx, u2.ID, roomID)
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeLeft, res.Outcome)
		assert.Equal(t, []uuid.UUID{u1.ID}, res.Room.Participants)
		assert.Empty(t, w.profile(t, u2.ID).Rooms)

		res, err = w.usecase.LeaveRoom(w.ctx, u2.ID, roomID)
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeNotMember, res.Outcome)
		assert.Equal(t, []uuid.UUID{u1.ID}, res.Room.Participants)
	})

	t.WithNewStep("Transfer host", func(sCtx provider.StepCtx) {
		_, err := w.usecase.JoinRoom(w.ctx, u2.ID, roomID)
		require.NoError(t, err)

		res, err := w.usecase.TransferHost(w.ctx, u1.ID, roomID, "u2")
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeHostChanged, res.Outcome)
		assert.Equal(t, u2.ID, res.Room.Host)

		_, err = w.usecase.TransferHost(w.ctx, u1.ID, roomID, "u3")
		assert.ErrorIs(t, err, usecase_membership.ErrNotHost)
	})

	t.WithNewStep("List rooms of a user", func(sCtx provider.StepCtx) {
		refs, err := w.usecase.ListRoomsForUser(w.ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, []model.RoomRef{{ID: roomID, Name: "standup"}}, refs)

		_, err = w.usecase.ListRoomsForUser(w.ctx, "nobody")
		assert.ErrorIs(t, err, usecase_membership.ErrUserNotFound)
	})
}

func (s *MembershipScenarioSuite) TestHostSuccession(t provider.T) {
	w := newWorld(3)
	u1, u2, u3 := w.user(t, "u1"), w.user(t, "u2"), w.user(t, "u3")

	res, err := w.usecase.CreateRoom(w.ctx, u1.ID, "retro", 0)
	require.NoError(t, err)
	roomID := res.Room.ID
	assert.Equal(t, model.DefaultRoomCapacity, res.Room.Capacity)

	for _, u := range []model.User{u2, u3} {
		_, err := w.usecase.JoinRoom(w.ctx, u.ID, roomID)
		require.NoError(t, err)
	}

	res, err = w.usecase.LeaveRoom(w.ctx, u1.ID, roomID)
	require.NoError(t, err)
	assert.Equal(t, u2.ID, res.Room.Host)
	assert.Equal(t, []uuid.UUID{u2.ID, u3.ID}, res.Room.Participants)

	_, err = w.usecase.LeaveRoom(w.ctx, u3.ID, roomID)
	require.NoError(t, err)

	_, err = w.usecase.LeaveRoom(w.ctx, u2.ID, roomID)
	assert.ErrorIs(t, err, usecase_membership.ErrLastParticipant)

	room, err := w.usecase.GetRoom(w.ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, u2.ID, room.Host)
	assert.Equal(t, []uuid.UUID{u2.ID}, room.Participants)
}

func (s *MembershipScenarioSuite) TestStaleUserRoomIsHealed(t provider.T) {
	w := newWorld(3)
	u1, u2 := w.user(t, "u1"), w.user(t, "u2")

	res, err := w.usecase.CreateRoom(w.ctx, u1.ID, "standup", 2)
	require.NoError(t, err)
	roomID := res.Room.ID

	// As if a previous leave had updated the room but not the user.
	require.NoError(t, w.users.AddRoom(w.ctx, u2.ID, roomID))

	res, err = w.usecase.LeaveRoom(w.ctx, u2.ID, roomID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNotMember, res.Outcome)
	assert.Empty(t, w.profile(t, u2.ID).Rooms)
}

func TestScenarioSuite(t *testing.T) {
	suite.RunSuite(t, new(MembershipScenarioSuite))
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	const (
		capacity = 3
		joiners  = 32
	)

	w := newWorld(joiners)
	host := w.user(t, "host")
	res, err := w.usecase.CreateRoom(w.ctx, host.ID, "crowded", capacity)
	require.NoError(t, err)
	roomID := res.Room.ID

	users := make([]model.User, joiners)
	for i := range users {
		users[i] = w.user(t, uuid.NewString())
	}

	var joined atomic.Int32
	var g errgroup.Group
	for _, u := range users {
		g.Go(func() error {
			res, err := w.usecase.JoinRoom(w.ctx, u.ID, roomID)
			switch {
			case err == nil:
				if res.Outcome == model.OutcomeJoined {
					joined.Add(1)
				}
				return nil
			case errors.Is(err, usecase_membership.ErrCapacityExceeded),
				errors.Is(err, usecase_membership.ErrConflict):
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	room, err := w.usecase.GetRoom(w.ctx, roomID)
	require.NoError(t, err)
	assert.Len(t, room.Participants, capacity)
	assert.Equal(t, int32(capacity-1), joined.Load())

	for _, u := range users {
		profile := w.profile(t, u.ID)
		assert.Equal(t, room.IsParticipant(u.ID), profile.InRoom(roomID))
	}
}
