package usecase_membership

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
)

// Returned by repositories.
var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrVersionConflict  = errors.New("version conflict")
)

var (
	ErrInternal         = errors.New("internal error")
	ErrRoomNotFound     = errors.New("room not found")
	ErrUserNotFound     = errors.New("user does not exist")
	ErrInvalidName      = errors.New("room name is required")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrNotHost          = errors.New("not the current host")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrLastParticipant  = errors.New("host is the last participant")
	ErrConflict         = errors.New("room was modified concurrently")
)

const (
	OpCreate   = "create"
	OpJoin     = "join"
	OpLeave    = "leave"
	OpTransfer = "transfer_host"
)

// The user side of a membership change is written even if the caller
// has already gone away, the room side has happened by then.
const mirrorTimeout = 3 * time.Second

//go:generate mockery --name=RoomRepository --output=./mocks/repository --filename=room_repository.go
type RoomRepository interface {
	Create(ctx context.Context, room model.Room) error
	ByID(ctx context.Context, id uuid.UUID) (model.Room, error)
	ByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	// Update succeeds only if the stored version still equals room.Version,
	// otherwise ErrVersionConflict. Returns the room with its new version.
	Update(ctx context.Context, room model.Room) (model.Room, error)
}

//go:generate mockery --name=UserRepository --output=./mocks/repository --filename=user_repository.go
type UserRepository interface {
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ByUsername(ctx context.Context, username string) (model.User, error)
	AddRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error
	RemoveRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error
}

//go:generate mockery --name=Metrics --output=./mocks/metrics --filename=metrics.go
type Metrics interface {
	Outcome(op string, outcome model.Outcome)
	Conflict(op string)
	InconsistentWrite(op string)
}

type Usecase struct {
	RoomRepository RoomRepository
	UserRepository UserRepository
	Metrics        Metrics

	defaultCapacity int
	maxAttempts     int
	logger          *slog.Logger
}

func New(
	roomRepository RoomRepository,
	userRepository UserRepository,
	metrics Metrics,
	defaultCapacity int,
	maxAttempts int,
) *Usecase {
	if defaultCapacity <= 0 {
		defaultCapacity = model.DefaultRoomCapacity
	}
	if maxAttempts <= 0 {
		maxAttempts = 3 /* default */
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Usecase{
		RoomRepository:  roomRepository,
		UserRepository:  userRepository,
		Metrics:         metrics,
		defaultCapacity: defaultCapacity,
		maxAttempts:     maxAttempts,
		logger:          slog.Default(),
	}
}

// Zero capacity means the default one.
func (u *Usecase) CreateRoom(ctx context.Context, actorID uuid.UUID, name string, capacity int) (model.MembershipResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.MembershipResult{}, ErrInvalidName
	}
	if capacity == 0 {
		capacity = u.defaultCapacity
	}
	if capacity < 1 {
		return model.MembershipResult{}, ErrInvalidCapacity
	}

	room := model.Room{
		ID:           uuid.New(),
		Name:         name,
		Host:         actorID,
		Capacity:     capacity,
		Participants: []uuid.UUID{actorID},
		Version:      1,
	}
	if err := u.RoomRepository.Create(ctx, room); err != nil {
		return model.MembershipResult{}, errors.Join(ErrInternal, err)
	}

	u.mirror(ctx, OpCreate, actorID, room.ID, u.UserRepository.AddRoom)
	u.Metrics.Outcome(OpCreate, model.OutcomeCreated)

	return model.MembershipResult{Room: room, Outcome: model.OutcomeCreated}, nil
}

func (u *Usecase) JoinRoom(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (model.MembershipResult, error) {
	res, err := u.mutate(ctx, OpJoin, roomID, func(room *model.Room) (model.Outcome, error) {
		if room.IsParticipant(actorID) {
			return model.OutcomeAlreadyMember, nil
		}
		if room.IsFull() {
			return "", ErrCapacityExceeded
		}
		room.AddParticipant(actorID)
		return model.OutcomeJoined, nil
	})
	if err != nil {
		return res, err
	}

	if res.Outcome == model.OutcomeJoined {
		u.mirror(ctx, OpJoin, actorID, roomID, u.UserRepository.AddRoom)
	}
	return res, nil
}

// A departing host hands the room over to the earliest joined participant.
// A host who is alone in the room has nobody to hand it to and cannot leave.
func (u *Usecase) LeaveRoom(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID) (model.MembershipResult, error) {
	var user *model.User
	res, err := u.mutate(ctx, OpLeave, roomID, func(room *model.Room) (model.Outcome, error) {
		if user == nil {
			fetched, err := u.UserRepository.ByID(ctx, actorID)
			if err != nil {
				if errors.Is(err, ErrResourceNotFound) {
					return "", ErrUserNotFound
				}
				return "", errors.Join(ErrInternal, err)
			}
			user = &fetched
		}

		if !room.IsParticipant(actorID) {
			return model.OutcomeNotMember, nil
		}
		if room.IsHost(actorID) {
			if len(room.Participants) == 1 {
				return "", ErrLastParticipant
			}
			room.RemoveParticipant(actorID)
			room.Host = room.Participants[0]
			return model.OutcomeLeft, nil
		}
		room.RemoveParticipant(actorID)
		return model.OutcomeLeft, nil
	})
	if err != nil {
		return res, err
	}

	switch {
	case res.Outcome == model.OutcomeLeft:
		u.mirror(ctx, OpLeave, actorID, roomID, u.UserRepository.RemoveRoom)
	case user != nil && user.InRoom(roomID):
		// Left behind by an earlier inconsistent write.
		u.logger.Info("removing stale room from user",
			slog.String("room_id", roomID.String()),
			slog.String("user_id", actorID.String()))
		u.mirror(ctx, OpLeave, actorID, roomID, u.UserRepository.RemoveRoom)
	}
	return res, nil
}

// The new host has to be in the room already.
func (u *Usecase) TransferHost(ctx context.Context, actorID uuid.UUID, roomID uuid.UUID, newHostUsername string) (model.MembershipResult, error) {
	var target *model.User
	return u.mutate(ctx, OpTransfer, roomID, func(room *model.Room) (model.Outcome, error) {
		if !room.IsParticipant(actorID) {
			return model.OutcomeNotMember, nil
		}
		if !room.IsHost(actorID) {
			return "", ErrNotHost
		}

		if target == nil {
			fetched, err := u.UserRepository.ByUsername(ctx, newHostUsername)
			if err != nil {
				if errors.Is(err, ErrResourceNotFound) {
					return "", ErrInvalidTarget
				}
				return "", errors.Join(ErrInternal, err)
			}
			target = &fetched
		}

		if !room.IsParticipant(target.ID) {
			return "", ErrInvalidTarget
		}
		room.Host = target.ID
		return model.OutcomeHostChanged, nil
	})
}

func (u *Usecase) ListRoomsForUser(ctx context.Context, username string) ([]model.RoomRef, error) {
	user, err := u.UserRepository.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}

	refs := make([]model.RoomRef, 0, len(user.Rooms))
	if len(user.Rooms) == 0 {
		return refs, nil
	}

	rooms, err := u.RoomRepository.ByIDs(ctx, user.Rooms)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	byID := make(map[uuid.UUID]model.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	for _, id := range user.Rooms {
		if room, ok := byID[id]; ok {
			refs = append(refs, room.Ref())
		}
	}
	return refs, nil
}

func (u *Usecase) GetRoom(ctx context.Context, roomID uuid.UUID) (model.Room, error) {
	room, err := u.RoomRepository.ByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrRoomNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) ListRooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := u.RoomRepository.List(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return rooms, nil
}

type mutation func(room *model.Room) (model.Outcome, error)

// mutate runs read-validate-write on a room until the write lands on the
// version the mutation was validated against. Informational outcomes end
// the cycle without writing.
func (u *Usecase) mutate(ctx context.Context, op string, roomID uuid.UUID, apply mutation) (model.MembershipResult, error) {
	for attempt := 0; attempt < u.maxAttempts; attempt++ {
		room, err := u.RoomRepository.ByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return model.MembershipResult{}, ErrRoomNotFound
			}
			return model.MembershipResult{}, errors.Join(ErrInternal, err)
		}

		next := room.Clone()
		outcome, err := apply(&next)
		if err != nil {
			return model.MembershipResult{Room: room}, err
		}
		if outcome.Informational() {
			u.Metrics.Outcome(op, outcome)
			return model.MembershipResult{Room: room, Outcome: outcome}, nil
		}

		updated, err := u.RoomRepository.Update(ctx, next)
		if err == nil {
			u.Metrics.Outcome(op, outcome)
			return model.MembershipResult{Room: updated, Outcome: outcome}, nil
		}
		switch {
		case errors.Is(err, ErrVersionConflict):
			u.Metrics.Conflict(op)
			u.logger.Debug("room version conflict, retrying",
				slog.String("op", op),
				slog.String("room_id", roomID.String()),
				slog.Int("attempt", attempt+1))
		case errors.Is(err, ErrResourceNotFound):
			return model.MembershipResult{}, ErrRoomNotFound
		default:
			return model.MembershipResult{}, errors.Join(ErrInternal, err)
		}
	}

	return model.MembershipResult{}, ErrConflict
}

// mirror applies the user side of a membership change. A failure here is
// not the caller's failure: it is logged and counted for reconciliation.
func (u *Usecase) mirror(
	ctx context.Context,
	op string,
	userID uuid.UUID,
	roomID uuid.UUID,
	write func(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error,
) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()

	if err := write(ctx, userID, roomID); err != nil {
		u.Metrics.InconsistentWrite(op)
		u.logger.Warn("inconsistent write",
			slog.String("op", op),
			slog.String("room_id", roomID.String()),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
}

type nopMetrics struct{}

func (nopMetrics) Outcome(string, model.Outcome) {}
func (nopMetrics) Conflict(string)               {}
func (nopMetrics) InconsistentWrite(string)      {}
