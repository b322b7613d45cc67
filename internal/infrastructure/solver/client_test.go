package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ─────────────────────────────────────────────
// Resolver
// ─────────────────────────────────────────────

func TestResolver_OK(t *testing.T) {
	var recibido pricing.SolverRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cuotario": [
				{"cuotas": 3, "lista_precio_id": 4, "precio": 150000.00, "comision_base_pct": 13, "comision_total": 36500.00, "limpio": 133057.86, "markup_real": 33.06},
				{"cuotas": 6, "lista_precio_id": 4, "precio": 158000.00, "comision_base_pct": 13, "comision_total": 41200.00, "limpio": 133057.86, "markup_real": 33.06}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	cuotario, err := client.Resolver(context.Background(), pricing.SolverRequest{
		Costo:          dec("100000"),
		MonedaCosto:    "ARS",
		IVA:            dec("21"),
		MarkupObjetivo: dec("33.06"),
		GrupoComision:  1,
	})

	require.NoError(t, err)
	require.Len(t, cuotario, 2)
	assert.Equal(t, 3, cuotario[0].Cuotas)
	assert.Equal(t, 4, cuotario[0].ListaPrecioID)
	assert.True(t, cuotario[0].Precio.Equal(dec("150000")))
	assert.Equal(t, 6, cuotario[1].Cuotas)

	// La consulta viaja completa al solver.
	assert.True(t, recibido.Costo.Equal(dec("100000")))
	assert.Equal(t, "ARS", recibido.MonedaCosto)
	assert.True(t, recibido.MarkupObjetivo.Equal(dec("33.06")))
	assert.Equal(t, 1, recibido.GrupoComision)
}

func TestResolver_Status500EsNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	cuotario, err := client.Resolver(context.Background(), pricing.SolverRequest{})

	assert.ErrorIs(t, err, domain.ErrSolverNoDisponible)
	assert.Nil(t, cuotario)
}

func TestResolver_TimeoutEsNoDisponible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"cuotario": []}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.Resolver(ctx, pricing.SolverRequest{})

	assert.ErrorIs(t, err, domain.ErrSolverNoDisponible)
}

func TestResolver_Status400NoEsNoDisponible(t *testing.T) {
	// Un rechazo por entrada inválida es un error real, no una degradación.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`entrada inválida`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.Resolver(context.Background(), pricing.SolverRequest{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSolverNoDisponible)
}
