package service_jwt_auth

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInternal              = errors.New("internal error")
	ErrInvalidToken          = errors.New("token is not valid")
	ErrRevocationUnavailable = errors.New("token revocation is not configured")
	ErrEmptySecret           = errors.New("signing secret is empty")
)

type RevocationCache interface {
	Revoke(tokenID string, ttl time.Duration) error
	IsRevoked(tokenID string) (bool, error)
}

type userClaim struct {
	ID string `json:"id"`
}

// Payload is {"user": {"id": ...}} plus the registered claims.
type claims struct {
	User userClaim `json:"user"`
	jwt.RegisteredClaims
}

type Service struct {
	secret  []byte
	ttl     time.Duration
	clock   clock.Clock
	revoked RevocationCache
}

// A nil revocation cache disables logout; tokens then live until expiry.
func New(
	secret string,
	ttl time.Duration,
	clk clock.Clock,
	revoked RevocationCache,
) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 360000 * time.Second
	}
	if clk == nil {
		clk = clock.New()
	}

	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		clock:   clk,
		revoked: revoked,
	}, nil
}

func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.clock.Now()
	c := claims{
		User: userClaim{ID: userID.String()},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return token, nil
}

// Verify returns the acting user id carried by a valid, unrevoked token.
func (s *Service) Verify(token string) (uuid.UUID, error) {
	c, err := s.parse(token)
	if err != nil {
		return uuid.Nil, err
	}

	if s.revoked != nil && c.ID != "" {
		revoked, err := s.revoked.IsRevoked(c.ID)
		if err != nil {
			return uuid.Nil, errors.Join(ErrInternal, err)
		}
		if revoked {
			return uuid.Nil, ErrInvalidToken
		}
	}

	userID, err := uuid.Parse(c.User.ID)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}
	return userID, nil
}

// Revoke keeps the token id on the revocation list until the token
// would have expired anyway.
func (s *Service) Revoke(token string) error {
	if s.revoked == nil {
		return ErrRevocationUnavailable
	}

	c, err := s.parse(token)
	if err != nil {
		return err
	}
	if c.ID == "" {
		return ErrInvalidToken
	}

	ttl := c.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Revoke(c.ID, ttl); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (s *Service) parse(token string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return c, nil
}
