package cart

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Load(ctx context.Context) ([]Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]Item)
	return items, args.Error(1)
}

func (m *MockPersister) Save(ctx context.Context, items []Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}
