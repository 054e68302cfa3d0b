package model

import (
	"slices"

	"github.com/google/uuid"
)

const DefaultRoomCapacity = 5

// Room keeps participants in join order. The order is only used for host
// succession, membership itself is a set.
type Room struct {
	ID           uuid.UUID
	Name         string
	Host         uuid.UUID
	Capacity     int
	Participants []uuid.UUID

	// Bumped by the store on every successful update.
	Version int64
}

// RoomRef is the short form of a room listed on a user's profile.
type RoomRef struct {
	ID   uuid.UUID
	Name string
}

func (r *Room) IsParticipant(userID uuid.UUID) bool {
	return slices.Contains(r.Participants, userID)
}

func (r *Room) IsHost(userID uuid.UUID) bool {
	return r.Host == userID
}

func (r *Room) IsFull() bool {
	return len(r.Participants) >= r.Capacity
}

func (r *Room) AddParticipant(userID uuid.UUID) {
	if r.IsParticipant(userID) {
		return
	}
	r.Participants = append(r.Participants, userID)
}

func (r *Room) RemoveParticipant(userID uuid.UUID) {
	r.Participants = slices.DeleteFunc(r.Participants, func(id uuid.UUID) bool {
		return id == userID
	})
}

func (r *Room) Ref() RoomRef {
	return RoomRef{ID: r.ID, Name: r.Name}
}

// Clone returns a copy that does not share the participants slice.
func (r Room) Clone() Room {
	r.Participants = slices.Clone(r.Participants)
	return r
}
