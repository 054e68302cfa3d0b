package http_common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ActorIDKey = "actor_id"
	TokenKey   = "auth_token"
)

// ErrorResponse is also used for informational replies such as
// "already joined", so both share the msg key.
type ErrorResponse struct {
	Message string `json:"msg"`
}

type MessageResponse = ErrorResponse

// ActorID is the user id put on the context by the auth middleware.
func ActorID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(ActorIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func Token(ctx *gin.Context) string {
	return ctx.GetString(TokenKey)
}
