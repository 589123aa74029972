// Package mocks holds hand-written testify mocks for the core ports, used by
// the service-layer tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
)

// EventRepository mocks ports.EventRepository.
type EventRepository struct {
	mock.Mock
}

func (_m *EventRepository) Find(ctx context.Context, filter ports.EventFilter) ([]domain.Event, error) {
	ret := _m.Called(ctx, filter)

	var r0 []domain.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Event)
	}
	return r0, ret.Error(1)
}

func (_m *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Event)
	}
	return r0, ret.Error(1)
}

func (_m *EventRepository) FindOne(ctx context.Context, filter ports.EventFilter) (*domain.Event, error) {
	ret := _m.Called(ctx, filter)

	var r0 *domain.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Event)
	}
	return r0, ret.Error(1)
}

func (_m *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *EventRepository) AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee) error {
	ret := _m.Called(ctx, eventID, attendee)
	return ret.Error(0)
}

func (_m *EventRepository) DeleteOne(ctx context.Context, filter ports.EventFilter) error {
	ret := _m.Called(ctx, filter)
	return ret.Error(0)
}

// NewEventRepository creates a new instance of EventRepository. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewEventRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventRepository {
	m := &EventRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
