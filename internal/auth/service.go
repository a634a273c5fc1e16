package auth

import (
	"context"
	"errors"

	"storefront-be/internal/user"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Service resolves the current actor for a request. Callers never pass a
// user id of their own; the identity always comes from the request context
// populated by the auth middleware.
type Service interface {
	CurrentActor(ctx context.Context) (user.User, error)
}

type service struct {
	users user.Repository
}

func NewService(users user.Repository) Service {
	return &service{users: users}
}

func (s *service) CurrentActor(ctx context.Context) (user.User, error) {
	id, ok := ActorIDFromContext(ctx)
	if !ok {
		return user.User{}, ErrUnauthenticated
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return user.User{}, ErrUnauthenticated
	}

	return u, nil
}
