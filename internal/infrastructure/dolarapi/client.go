package dolarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/application/pricing"
)

// Verificar en tiempo de compilación que Client implementa ExchangeRateProvider.
var _ pricing.ExchangeRateProvider = (*Client)(nil)

// Client adaptador del proveedor de cotización del dólar oficial (API estilo
// dolarapi). Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient construye el adaptador. url suele ser
// "https://dolarapi.com/v1/dolares/oficial".
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// cotizacionPayload respuesta del proveedor.
type cotizacionPayload struct {
	Compra decimal.Decimal `json:"compra"`
	Venta  decimal.Decimal `json:"venta"`
	Fecha  time.Time       `json:"fechaActualizacion"`
}

// Cotizacion consulta la cotización vigente. El motor usa la punta venta.
func (c *Client) Cotizacion(ctx context.Context) (*pricing.Cotizacion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("armar request cotización: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar cotización: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cotización: status %d: %s", resp.StatusCode, body)
	}

	var payload cotizacionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decodificar cotización: %w", err)
	}
	if !payload.Venta.IsPositive() {
		return nil, fmt.Errorf("cotización inválida: venta %s", payload.Venta)
	}

	return &pricing.Cotizacion{
		Compra: payload.Compra,
		Venta:  payload.Venta,
		Fecha:  payload.Fecha,
	}, nil
}
