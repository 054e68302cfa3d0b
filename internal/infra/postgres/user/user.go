package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	usecase_user "github.com/humanbelnik/roomsync/core/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type userDTO struct {
	ID          uuid.UUID      `db:"id"`
	Username    string         `db:"username"`
	Password    []byte         `db:"password"`
	MobileToken string         `db:"mobile_token"`
	Rooms       pq.StringArray `db:"rooms"`
}

func (dto userDTO) toModel() (model.User, error) {
	rooms := make([]uuid.UUID, 0, len(dto.Rooms))
	for _, s := range dto.Rooms {
		id, err := uuid.Parse(s)
		if err != nil {
			return model.User{}, err
		}
		rooms = append(rooms, id)
	}
	return model.User{
		ID:          dto.ID,
		Username:    dto.Username,
		Password:    dto.Password,
		MobileToken: dto.MobileToken,
		Rooms:       rooms,
	}, nil
}

func (d *Driver) Create(ctx context.Context, user model.User) error {
	rooms := make(pq.StringArray, 0, len(user.Rooms))
	for _, id := range user.Rooms {
		rooms = append(rooms, id.String())
	}

	query := `
		INSERT INTO users (id, username, password, mobile_token, rooms)
		VALUES (:id, :username, :password, :mobile_token, :rooms)
	`

	_, err := d.db.NamedExecContext(ctx, query, userDTO{
		ID:          user.ID,
		Username:    user.Username,
		Password:    user.Password,
		MobileToken: user.MobileToken,
		Rooms:       rooms,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return usecase_user.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `
		SELECT id, username, password, mobile_token, rooms
		FROM users
		WHERE id = $1
	`
	return d.get(ctx, query, id)
}

func (d *Driver) ByUsername(ctx context.Context, username string) (model.User, error) {
	query := `
		SELECT id, username, password, mobile_token, rooms
		FROM users
		WHERE username = $1
	`
	return d.get(ctx, query, username)
}

func (d *Driver) List(ctx context.Context) ([]model.User, error) {
	var dtos []userDTO

	query := `
		SELECT id, username, password, mobile_token, rooms
		FROM users
		ORDER BY created_at, id
	`

	if err := d.db.SelectContext(ctx, &dtos, query); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(dtos))
	for _, dto := range dtos {
		user, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// AddRoom is a single-statement set insert, repeating it changes nothing.
func (d *Driver) AddRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error {
	query := `
		UPDATE users
		SET rooms = CASE WHEN $1::uuid = ANY(rooms) THEN rooms ELSE array_append(rooms, $1::uuid) END
		WHERE id = $2
	`
	return d.exec(ctx, query, roomID, userID)
}

func (d *Driver) RemoveRoom(ctx context.Context, userID uuid.UUID, roomID uuid.UUID) error {
	query := `
		UPDATE users
		SET rooms = array_remove(rooms, $1::uuid)
		WHERE id = $2
	`
	return d.exec(ctx, query, roomID, userID)
}

func (d *Driver) get(ctx context.Context, query string, arg any) (model.User, error) {
	var user userDTO

	err := d.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, usecase_membership.ErrResourceNotFound
		}
		return model.User{}, err
	}

	return user.toModel()
}

func (d *Driver) exec(ctx context.Context, query string, args ...any) error {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_membership.ErrResourceNotFound
	}

	return nil
}
