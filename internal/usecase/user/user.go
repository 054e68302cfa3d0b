package usecase_user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/humanbelnik/roomsync/core/internal/model"
	usecase_membership "github.com/humanbelnik/roomsync/core/internal/usecase/membership"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var (
	// Users live in the same store the membership usecase reads from.
	ErrResourceNotFound = usecase_membership.ErrResourceNotFound
	ErrUsernameTaken    = errors.New("user already exists")

	ErrInternal           = errors.New("internal error")
	ErrUserNotFound       = usecase_membership.ErrUserNotFound
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("please enter a password with minimum of 6 characters")
)

//go:generate mockery --name=UserRepository --output=./mocks/repository --filename=user_repository.go
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	ByUsername(ctx context.Context, username string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

//go:generate mockery --name=TokenService --output=./mocks/token --filename=token_service.go
type TokenService interface {
	Issue(userID uuid.UUID) (string, error)
	Revoke(token string) error
}

type Usecase struct {
	UserRepository UserRepository
	TokenService   TokenService

	cost int
}

func New(
	userRepository UserRepository,
	tokenService TokenService,
	cost int,
) *Usecase {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	return &Usecase{
		UserRepository: userRepository,
		TokenService:   tokenService,
		cost:           cost,
	}
}

func (u *Usecase) Register(ctx context.Context, username string, password string, mobileToken string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if len(password) < minPasswordLen {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	user := model.User{
		ID:          uuid.New(),
		Username:    username,
		Password:    hash,
		MobileToken: mobileToken,
		Rooms:       []uuid.UUID{},
	}
	if err := u.UserRepository.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return "", ErrUsernameTaken
		}
		return "", errors.Join(ErrInternal, err)
	}

	return u.issue(user.ID)
}

// Unknown username and wrong password look the same to the caller.
func (u *Usecase) Login(ctx context.Context, username string, password string) (string, error) {
	user, err := u.UserRepository.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", errors.Join(ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return u.issue(user.ID)
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	if err := u.TokenService.Revoke(token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) User(ctx context.Context, username string) (model.User, error) {
	user, err := u.UserRepository.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user.Public(), nil
}

func (u *Usecase) Users(ctx context.Context) ([]model.User, error) {
	users, err := u.UserRepository.List(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	public := make([]model.User, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}
	return public, nil
}

func (u *Usecase) issue(userID uuid.UUID) (string, error) {
	token, err := u.TokenService.Issue(userID)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return token, nil
}
