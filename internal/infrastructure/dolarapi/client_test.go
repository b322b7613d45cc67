package dolarapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Cotizacion
// ─────────────────────────────────────────────

func TestCotizacion_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"moneda": "USD",
			"casa": "oficial",
			"compra": 1180.50,
			"venta": 1200.00,
			"fechaActualizacion": "2025-03-10T15:00:00.000Z"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	cot, err := client.Cotizacion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1180.5", cot.Compra.String())
	assert.Equal(t, "1200", cot.Venta.String())
	assert.Equal(t, 2025, cot.Fecha.Year())
}

func TestCotizacion_StatusNoOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	cot, err := client.Cotizacion(context.Background())

	assert.Error(t, err)
	assert.Nil(t, cot)
}

func TestCotizacion_VentaInvalida(t *testing.T) {
	// Una venta en cero no sirve para convertir costos; se rechaza.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"compra": 0, "venta": 0, "fechaActualizacion": "2025-03-10T15:00:00.000Z"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	cot, err := client.Cotizacion(context.Background())

	assert.Error(t, err)
	assert.Nil(t, cot)
}

func TestCotizacion_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL)
	_, err := client.Cotizacion(ctx)

	assert.Error(t, err)
}
