package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// UserRepository mocks ports.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) FindOne(ctx context.Context, filter ports.UserFilter) (*domain.User, error) {
	ret := _m.Called(ctx, filter)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *UserRepository) AppendTicket(ctx context.Context, userID string, ticket domain.Ticket) error {
	ret := _m.Called(ctx, userID, ticket)
	return ret.Error(0)
}

// NewUserRepository creates a new instance of UserRepository. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
