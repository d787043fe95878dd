package services

import (
	"context"

	"github.com/EO-DataHub/workos-go/models"
	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, wh *webhooks.Webhook, payload []byte) error {
	args := m.Called(ctx, wh, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockDeliveryStore struct {
	mock.Mock
}

func (m *MockDeliveryStore) RecordDelivery(ctx context.Context, wh *webhooks.Webhook) (bool, error) {
	args := m.Called(ctx, wh)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryStore) MarkPublished(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDeliveryStore) ForgetDelivery(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
