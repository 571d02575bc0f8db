package checkout

import (
	"context"

	"github.com/darkkaiser/sangabriel-catalog/internal/service/payment/mercadopago"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePreference(ctx context.Context, pref mercadopago.PreferenceRequest) (mercadopago.Preference, error) {
	args := m.Called(ctx, pref)
	p, _ := args.Get(0).(mercadopago.Preference)
	return p, args.Error(1)
}

func (m *MockGateway) GetPayment(ctx context.Context, id string) (mercadopago.Payment, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(mercadopago.Payment)
	return p, args.Error(1)
}
