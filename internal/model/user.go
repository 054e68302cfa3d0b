package model

import (
	"slices"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID
	Username    string
	Password    []byte
	MobileToken string
	Rooms       []uuid.UUID
}

func (u *User) InRoom(roomID uuid.UUID) bool {
	return slices.Contains(u.Rooms, roomID)
}

// Public strips credentials.
func (u User) Public() User {
	u.Password = nil
	u.Rooms = slices.Clone(u.Rooms)
	return u
}
