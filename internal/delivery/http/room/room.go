package http_room

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/roomsync/core/internal/delivery/http/common"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
)

type Controller struct {
	usecase *usecase_membership.Usecase
	auth    gin.HandlerFunc
	logger  *slog.Logger
}

func New(usecase *usecase_membership.Usecase, auth gin.HandlerFunc) *Controller {
	return &Controller{
		usecase: usecase,
		auth:    auth,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/rooms")
	{
		rooms.GET("", c.list)
		rooms.GET("/:room_id", c.get)
		rooms.GET("/all/:username", c.listForUser)
		rooms.POST("/create", c.auth, c.create)
		rooms.PUT("/join", c.auth, c.join)
		rooms.PUT("/leave", c.auth, c.leave)
		rooms.PUT("/host", c.auth, c.transferHost)
	}
}

type RoomResponseDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Host         string   `json:"host"`
	Capacity     int      `json:"capacity"`
	Participants []string `json:"participants"`
	Version      int64    `json:"version"`
}

type RoomRefResponseDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toRoomDTO(room model.Room) RoomResponseDTO {
	participants := make([]string, 0, len(room.Participants))
	for _, id := range room.Participants {
		participants = append(participants, id.String())
	}
	return RoomResponseDTO{
		ID:           room.ID.String(),
		Name:         room.Name,
		Host:         room.Host.String(),
		Capacity:     room.Capacity,
		Participants: participants,
		Version:      room.Version,
	}
}

// List returns all rooms
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Success 200 {array} RoomResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /rooms [get]
func (c *Controller) list(ctx *gin.Context) {
	rooms, err := c.usecase.ListRooms(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	resp := make([]RoomResponseDTO, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, toRoomDTO(room))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get returns a room by id
// @Summary Get room
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} RoomResponseDTO
// @Failure 404 {object} http_common.ErrorResponse "room not found"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /rooms/{room_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("room_id"))
	if err != nil {
		c.writeError(ctx, usecase_membership.ErrRoomNotFound)
		return
	}

	room, err := c.usecase.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		c.logger.Error("failed to get room", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toRoomDTO(room))
}

// ListForUser returns the rooms a user belongs to
// @Summary List rooms of a user
// @Tags Rooms
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} RoomRefResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "user does not exist"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /rooms/all/{username} [get]
func (c *Controller) listForUser(ctx *gin.Context) {
	refs, err := c.usecase.ListRoomsForUser(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		if errors.Is(err, usecase_membership.ErrUserNotFound) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "user does not exist",
			})
			return
		}
		c.logger.Error("failed to list rooms of user", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	resp := make([]RoomRefResponseDTO, 0, len(refs))
	for _, ref := range refs {
		resp = append(resp, RoomRefResponseDTO{ID: ref.ID.String(), Name: ref.Name})
	}
	ctx.JSON(http.StatusOK, resp)
}

type CreateRoomRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	Capacity *int   `json:"capacity" binding:"omitempty,min=1"`
}

// Create creates a room hosted by the caller
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Room"
// @Success 200 {object} RoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "invalid request format"
// @Failure 401 {object} http_common.ErrorResponse "no token / token is not valid"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Security AuthToken
// @Router /rooms/create [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	actorID, ok := http_common.ActorID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	var capacity int
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	res, err := c.usecase.CreateRoom(ctx.Request.Context(), actorID, req.Name, capacity)
	if err != nil {
		c.logger.Error("failed to create room", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toRoomDTO(res.Room))
}

type RoomRequestDTO struct {
	RoomID string `json:"roomId" binding:"required,uuid"`
}

// Join adds the caller to a room
// @Summary Join room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body RoomRequestDTO true "Room"
// @Success 200 {object} RoomResponseDTO "joined, or {msg: already joined}"
// @Failure 400 {object} http_common.ErrorResponse "capacity exceeded"
// @Failure 404 {object} http_common.ErrorResponse "room not found"
// @Failure 409 {object} http_common.ErrorResponse "room was modified concurrently"
// @Security AuthToken
// @Router /rooms/join [put]
func (c *Controller) join(ctx *gin.Context) {
	actorID, roomID, ok := c.bindRoomRequest(ctx)
	if !ok {
		return
	}

	res, err := c.usecase.JoinRoom(ctx.Request.Context(), actorID, roomID)
	if err != nil {
		c.logger.Warn("failed to join room", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	if res.Outcome == model.OutcomeAlreadyMember {
		ctx.JSON(http.StatusOK, http_common.MessageResponse{Message: "already joined"})
		return
	}
	ctx.JSON(http.StatusOK, toRoomDTO(res.Room))
}

// Leave removes the caller from a room
// @Summary Leave room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body RoomRequestDTO true "Room"
// @Success 200 {object} RoomResponseDTO "left, or {msg: not in room}"
// @Failure 400 {object} http_common.ErrorResponse "host is the last participant"
// @Failure 404 {object} http_common.ErrorResponse "room / user not found"
// @Security AuthToken
// @Router /rooms/leave [put]
func (c *Controller) leave(ctx *gin.Context) {
	actorID, roomID, ok := c.bindRoomRequest(ctx)
	if !ok {
		return
	}

	res, err := c.usecase.LeaveRoom(ctx.Request.Context(), actorID, roomID)
	if err != nil {
		c.logger.Warn("failed to leave room", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	if res.Outcome == model.OutcomeNotMember {
		ctx.JSON(http.StatusOK, http_common.MessageResponse{Message: "not in room"})
		return
	}
	ctx.JSON(http.StatusOK, toRoomDTO(res.Room))
}

type TransferHostRequestDTO struct {
	RoomID  string `json:"roomId" binding:"required,uuid"`
	NewHost string `json:"newHost" binding:"required"`
}

// TransferHost hands the host role to another participant
// @Summary Transfer host
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body TransferHostRequestDTO true "Room and new host username"
// @Success 200 {object} RoomResponseDTO "host changed, or {msg: not in room}"
// @Failure 400 {object} http_common.ErrorResponse "not the current host / invalid target"
// @Failure 404 {object} http_common.ErrorResponse "room not found"
// @Security AuthToken
// @Router /rooms/host [put]
func (c *Controller) transferHost(ctx *gin.Context) {
	var req TransferHostRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}
	actorID, ok := http_common.ActorID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return
	}

	res, err := c.usecase.TransferHost(ctx.Request.Context(), actorID, uuid.MustParse(req.RoomID), req.NewHost)
	if err != nil {
		c.logger.Warn("failed to transfer host", slog.String("error", err.Error()))
		c.writeError(ctx, err)
		return
	}

	if res.Outcome == model.OutcomeNotMember {
		ctx.JSON(http.StatusOK, http_common.MessageResponse{Message: "not in room"})
		return
	}
	ctx.JSON(http.StatusOK, toRoomDTO(res.Room))
}

func (c *Controller) bindRoomRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	var req RoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return uuid.Nil, uuid.Nil, false
	}

	actorID, ok := http_common.ActorID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}

	// Validated by the uuid binding tag.
	return actorID, uuid.MustParse(req.RoomID), true
}

func (c *Controller) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_membership.ErrRoomNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "room not found"})
	case errors.Is(err, usecase_membership.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "user not found"})
	case errors.Is(err, usecase_membership.ErrCapacityExceeded):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "capacity exceeded"})
	case errors.Is(err, usecase_membership.ErrNotHost):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "not the current host"})
	case errors.Is(err, usecase_membership.ErrInvalidTarget):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "invalid target"})
	case errors.Is(err, usecase_membership.ErrLastParticipant):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "host is the last participant"})
	case errors.Is(err, usecase_membership.ErrInvalidName),
		errors.Is(err, usecase_membership.ErrInvalidCapacity):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_membership.ErrConflict):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{Message: "room was modified concurrently, retry"})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
