package governance

//go:generate moq -out mocks_test.go -pkg governance . eventPublisher

import (
	"context"
	"sync"
)

var _ eventPublisher = &eventPublisherMock{}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, routingKey string, data any) error

	calls struct {
		Publish []struct {
			Ctx        context.Context
			RoutingKey string
			Data       any
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, routingKey string, data any) error {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but eventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		RoutingKey string
		Data       any
	}{
		Ctx:        ctx,
		RoutingKey: routingKey,
		Data:       data,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, routingKey, data)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx        context.Context
	RoutingKey string
	Data       any
} {
	mock.lockPublish.RLock()
	defer mock.lockPublish.RUnlock()
	return mock.calls.Publish
}
