package courier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanward/dispatch/pkg/courier"
	"github.com/vanward/dispatch/pkg/courier/mock"
)

func TestRegistry_Register(t *testing.T) {
	registry := courier.NewRegistry()

	mockCourier := mock.New("test-courier")
	registry.Register(mockCourier)

	got, err := registry.Get("test-courier")
	require.NoError(t, err, "courier should be registered")
	assert.Equal(t, "test-courier", got.Name())
}

func TestRegistry_Register_Override(t *testing.T) {
	registry := courier.NewRegistry()

	registry.Register(mock.New("test-courier"))
	assert.Equal(t, 1, registry.Count())

	// Register again with same name should override
	registry.Register(mock.New("test-courier"))
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_Get_NotFound(t *testing.T) {
	registry := courier.NewRegistry()

	_, err := registry.Get("nonexistent")
	assert.Error(t, err, "should return error for unregistered courier")
	assert.True(t, errors.Is(err, courier.ErrProviderNotFound))
}

func TestRegistry_All(t *testing.T) {
	registry := courier.NewRegistry()

	registry.Register(mock.New("courier-a"))
	registry.Register(mock.New("courier-b"))
	registry.Register(mock.New("courier-c"))

	all := registry.All()
	assert.Len(t, all, 3)
}

func TestRegistry_Names(t *testing.T) {
	registry := courier.NewRegistry()

	registry.Register(mock.New("gogovan"))
	registry.Register(mock.New("other"))

	names := registry.Names()
	assert.ElementsMatch(t, []string{"gogovan", "other"}, names)
}

func TestRegistry_QuoteAll(t *testing.T) {
	registry := courier.NewRegistry()

	registry.Register(mock.New("courier-a"))
	registry.Register(mock.New("courier-b"))

	quotes, errs := registry.QuoteAll(context.Background(), &courier.QuoteRequest{
		Vehicle: courier.VehicleMotorcycle,
		Stops:   []courier.Stop{{Address: "100 Harbor Rd"}, {Address: "55 Market St"}},
	})

	assert.Empty(t, errs)
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Equal(t, float64(120), q.Quote.Total)
	}
}

func TestRegistry_QuoteAll_Empty(t *testing.T) {
	registry := courier.NewRegistry()

	quotes, errs := registry.QuoteAll(context.Background(), &courier.QuoteRequest{})
	assert.Nil(t, quotes)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], courier.ErrProviderNotFound))
}

func TestRegistry_QuoteAll_PartialFailure(t *testing.T) {
	registry := courier.NewRegistry()

	healthy := mock.New("healthy")
	broken := mock.New("broken")
	broken.Err = errors.New("upstream down")

	registry.Register(healthy)
	registry.Register(broken)

	quotes, errs := registry.QuoteAll(context.Background(), &courier.QuoteRequest{})

	require.Len(t, quotes, 1, "healthy provider still quotes")
	assert.Equal(t, "healthy", quotes[0].Provider)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "broken")
}

func TestRegistry_QuoteFrom(t *testing.T) {
	registry := courier.NewRegistry()

	registry.Register(mock.New("courier-a"))
	registry.Register(mock.New("courier-b"))

	quotes, errs := registry.QuoteFrom(context.Background(), &courier.QuoteRequest{}, []string{"courier-a"})

	assert.Empty(t, errs)
	require.Len(t, quotes, 1)
	assert.Equal(t, "courier-a", quotes[0].Provider)
}

func TestRegistry_QuoteFrom_UnknownProvider(t *testing.T) {
	registry := courier.NewRegistry()
	registry.Register(mock.New("courier-a"))

	quotes, errs := registry.QuoteFrom(context.Background(), &courier.QuoteRequest{}, []string{"nope"})

	assert.Empty(t, quotes)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], courier.ErrProviderNotFound))
}
