package http_user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/roomsync/core/internal/delivery/http/common"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_user "github.com/humanbelnik/roomsync/core/internal/usecase/user"
)

type Controller struct {
	usecase *usecase_user.Usecase
	auth    gin.HandlerFunc
	logger  *slog.Logger
}

func New(
	usecase *usecase_user.Usecase,
	auth gin.HandlerFunc,
) *Controller {
	return &Controller{
		usecase: usecase,
		auth:    auth,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", c.list)
		users.GET("/:username", c.get)
		users.POST("/register", c.register)
		users.POST("/login", c.login)
		users.POST("/logout", c.auth, c.logout)
	}
}

type UserResponseDTO struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	MobileToken string   `json:"mobile_token,omitempty"`
	Rooms       []string `json:"rooms"`
}

func toUserDTO(u model.User) UserResponseDTO {
	rooms := make([]string, 0, len(u.Rooms))
	for _, id := range u.Rooms {
		rooms = append(rooms, id.String())
	}
	return UserResponseDTO{
		ID:          u.ID.String(),
		Username:    u.Username,
		MobileToken: u.MobileToken,
		Rooms:       rooms,
	}
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}

// List returns all users without credentials
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponseDTO
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /users [get]
func (c *Controller) list(ctx *gin.Context) {
	users, err := c.usecase.Users(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to list users", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	resp := make([]UserResponseDTO, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserDTO(u))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get returns a user by username
// @Summary Get user
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "user does not exist"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /users/{username} [get]
func (c *Controller) get(ctx *gin.Context) {
	user, err := c.usecase.User(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "user does not exist",
			})
			return
		}
		c.logger.Error("failed to get user", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toUserDTO(user))
}

type RegisterRequestDTO struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	MobileToken string `json:"mobile_token"`
}

// Register creates a user and returns a token for it
// @Summary Register
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Credentials"
// @Success 200 {object} TokenResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "invalid request format / user already exists"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /users/register [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", "error", err)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, err := c.usecase.Register(ctx.Request.Context(), req.Username, req.Password, req.MobileToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase_user.ErrUsernameTaken),
			errors.Is(err, usecase_user.ErrUsernameRequired),
			errors.Is(err, usecase_user.ErrPasswordTooShort):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
		default:
			c.logger.Error("failed to register user", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, TokenResponseDTO{Token: token})
}

type LoginRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a token
// @Summary Login
// @Tags Users
// @Accept json
// @Produce json
// @Param request body LoginRequestDTO true "Credentials"
// @Success 200 {object} TokenResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "invalid credentials"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Router /users/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", "error", err)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	token, err := c.usecase.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase_user.ErrInvalidCredentials) {
			c.logger.Warn("invalid credentials", slog.String("username", req.Username))
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid credentials",
			})
			return
		}
		c.logger.Error("failed to login", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponseDTO{Token: token})
}

// Logout revokes the presented token
// @Summary Logout
// @Tags Users
// @Success 204
// @Failure 401 {object} http_common.ErrorResponse "no token / token is not valid"
// @Failure 500 {object} http_common.ErrorResponse "internal error"
// @Security AuthToken
// @Router /users/logout [post]
func (c *Controller) logout(ctx *gin.Context) {
	if err := c.usecase.Logout(ctx.Request.Context(), http_common.Token(ctx)); err != nil {
		c.logger.Error("failed to logout", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
