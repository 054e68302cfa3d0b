package http_room_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/config"
	http_common "github.com/humanbelnik/roomsync/core/internal/delivery/http/common"
	http_init "github.com/humanbelnik/roomsync/core/internal/delivery/http/init"
	http_auth_middleware "github.com/humanbelnik/roomsync/core/internal/delivery/http/middleware/auth"
	http_room "github.com/humanbelnik/roomsync/core/internal/delivery/http/room"
	http_user "github.com/humanbelnik/roomsync/core/internal/delivery/http/user"
	infra_memory "github.com/humanbelnik/roomsync/core/internal/infra/memory"
	infra_redis_revocation "github.com/humanbelnik/roomsync/core/internal/infra/redis/revocation"
	service_jwt_auth "github.com/humanbelnik/roomsync/core/internal/service/auth/jwt"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	usecase_user "github.com/humanbelnik/roomsync/core/internal/usecase/user"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const apiPrefix = "/api"

type RoomHTTPSuite struct {
	suite.Suite
}

type server struct {
	handler http.Handler
	rooms   *infra_memory.Rooms
}

func newServer(t provider.T, mode string) *server {
	gin.SetMode(gin.TestMode)

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rooms := infra_memory.NewRooms()
	users := infra_memory.NewUsers()

	tokens, err := service_jwt_auth.New("test-secret", time.Hour, clock.New(), infra_redis_revocation.New(client, "revoked"))
	require.NoError(t, err)
	auth := http_auth_middleware.New(tokens).AuthRequired()

	pool := http_init.NewControllerPool(config.HTTPServer{
		Mode:           mode,
		APIPrefix:      apiPrefix,
		RequestTimeout: 5 * time.Second,
	})
	pool.Add(http_room.New(usecase_membership.New(rooms, users, nil, 5, 3), auth))
	pool.Add(http_user.New(usecase_user.New(users, tokens, bcrypt.MinCost), auth))
	pool.Register()

	return &server{handler: pool.Handler(), rooms: rooms}
}

func (s *server) do(t provider.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, apiPrefix+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(http_auth_middleware.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *server) register(t provider.T, username string) (string, uuid.UUID) {
	rec := s.do(t, http.MethodPost, "/users/register", "", http_user.RegisterRequestDTO{
		Username: username,
		Password: "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var token http_user.TokenResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))

	rec = s.do(t, http.MethodGet, "/users/"+username, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user http_user.UserResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))

	return token.Token, uuid.MustParse(user.ID)
}

func decode[T any](t provider.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *RoomHTTPSuite) TestMembershipOverHTTP(t provider.T) {
	srv := newServer(t, config.ModeReadWrite)
	tok1, u1 := srv.register(t, "u1")
	tok2, u2 := srv.register(t, "u2")
	tok3, _ := srv.register(t, "u3")

	var room http_room.RoomResponseDTO

	t.WithNewStep("Create", func(sCtx provider.StepCtx) {
		capacity := 2
		rec := srv.do(t, http.MethodPost, "/rooms/create", tok1, http_room.CreateRoomRequestDTO{
			Name:     "standup",
			Capacity: &capacity,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		room = decode[http_room.RoomResponseDTO](t, rec)

		assert.Equal(t, u1.String(), room.Host)
		assert.Equal(t, []string{u1.String()}, room.Participants)
		assert.Equal(t, 2, room.Capacity)
	})

	joinBody := http_room.RoomRequestDTO{RoomID: room.ID}

	t.WithNewStep("Join", func(sCtx provider.StepCtx) {
		rec := srv.do(t, http.MethodPut, "/rooms/join", tok2, joinBody)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []string{u1.String(), u2.String()},
			decode[http_room.RoomResponseDTO](t, rec).Participants)

		rec = srv.do(t, http.MethodPut, "/rooms/join", tok2, joinBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "already joined", decode[http_common.MessageResponse](t, rec).Message)

		rec = srv.do(t, http.MethodPut, "/rooms/join", tok3, joinBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "capacity exceeded", decode[http_common.ErrorResponse](t, rec).Message)
	})

	t.WithNewStep("List rooms of a user", func(sCtx provider.StepCtx) {
		rec := srv.do(t, http.MethodGet, "/rooms/all/u2", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []http_room.RoomRefResponseDTO{{ID: room.ID, Name: "standup"}},
			decode[[]http_room.RoomRefResponseDTO](t, rec))

		rec = srv.do(t, http.MethodGet, "/rooms/all/ghost", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "user does not exist", decode[http_common.ErrorResponse](t, rec).Message)
	})

	t.WithNewStep("Transfer host", func(sCtx provider.StepCtx) {
		rec := srv.do(t, http.MethodPut, "/rooms/host", tok1, http_room.TransferHostRequestDTO{
			RoomID:  room.ID,
			NewHost: "u2",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, u2.String(), decode[http_room.RoomResponseDTO](t, rec).Host)

		rec = srv.do(t, http.MethodPut, "/rooms/host", tok1, http_room.TransferHostRequestDTO{
			RoomID:  room.ID,
			NewHost: "u3",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "not the current host", decode[http_common.ErrorResponse](t, rec).Message)
	})

	t.WithNewStep("Leave", func(sCtx provider.StepCtx) {
		rec := srv.do(t, http.MethodPut, "/rooms/leave", tok3, joinBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "not in room", decode[http_common.MessageResponse](t, rec).Message)

		rec = srv.do(t, http.MethodPut, "/rooms/leave", tok1, joinBody)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []string{u2.String()}, decode[http_room.RoomResponseDTO](t, rec).Participants)

		rec = srv.do(t, http.MethodPut, "/rooms/leave", tok2, joinBody)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func (s *RoomHTTPSuite) TestRejectsBadTokensWithoutMutation(t provider.T) {
	srv := newServer(t, config.ModeReadWrite)
	tok1, _ := srv.register(t, "u1")
	tok2, _ := srv.register(t, "u2")

	rec := srv.do(t, http.MethodPost, "/rooms/create", tok1, http_room.CreateRoomRequestDTO{Name: "standup"})
	require.Equal(t, http.StatusOK, rec.Code)
	room := decode[http_room.RoomResponseDTO](t, rec)
	body := http_room.RoomRequestDTO{RoomID: room.ID}

	rec = srv.do(t, http.MethodPut, "/rooms/join", "garbage", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is not valid", decode[http_common.ErrorResponse](t, rec).Message)

	rec = srv.do(t, http.MethodPut, "/rooms/join", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no token, authorization denied", decode[http_common.ErrorResponse](t, rec).Message)

	rec = srv.do(t, http.MethodPost, "/users/logout", tok2, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodPut, "/rooms/join", tok2, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	stored, err := srv.rooms.ByID(context.Background(), uuid.MustParse(room.ID))
	require.NoError(t, err)
	assert.Equal(t, room.Version, stored.Version)
	assert.Len(t, stored.Participants, 1)
}

func (s *RoomHTTPSuite) TestRequestValidation(t provider.T) {
	srv := newServer(t, config.ModeReadWrite)
	tok, _ := srv.register(t, "u1")

	rec := srv.do(t, http.MethodPut, "/rooms/join", tok, map[string]string{"roomId": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPut, "/rooms/join", tok, http_room.RoomRequestDTO{RoomID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/rooms/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	zero := 0
	rec = srv.do(t, http.MethodPost, "/rooms/create", tok, http_room.CreateRoomRequestDTO{Name: "x", Capacity: &zero})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/users/login", "", http_user.LoginRequestDTO{Username: "u1", Password: "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid credentials", decode[http_common.ErrorResponse](t, rec).Message)

	rec = srv.do(t, http.MethodPost, "/users/register", "", http_user.RegisterRequestDTO{Username: "u1", Password: "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user already exists", decode[http_common.ErrorResponse](t, rec).Message)
}

func (s *RoomHTTPSuite) TestReadOnlyInstance(t provider.T) {
	srv := newServer(t, config.ModeReadOnly)

	rec := srv.do(t, http.MethodPost, "/users/register", "", http_user.RegisterRequestDTO{Username: "u1", Password: "secret1"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = srv.do(t, http.MethodGet, "/rooms", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]http_room.RoomResponseDTO](t, rec))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	root := httptest.NewRecorder()
	srv.handler.ServeHTTP(root, req)
	assert.Equal(t, http.StatusOK, root.Code)
	assert.Equal(t, "API running", root.Body.String())
}

func TestRoomHTTPSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomHTTPSuite))
}
