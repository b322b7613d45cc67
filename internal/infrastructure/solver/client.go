package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/comisiones-api/internal/application/pricing"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

var _ pricing.InstallmentSolver = (*Client)(nil)

// Client adaptador HTTP del solver de precios por cuotas. El solver corre
// como servicio aparte; acá solo se serializa la consulta y se interpreta
// la respuesta.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout acota la espera total; si el
// solver no responde a tiempo el cálculo sigue sin cuotario.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type solverResponse struct {
	Cuotario []entity.InstallmentPrice `json:"cuotario"`
}

// Resolver consulta el solver remoto. Errores de red, timeout o status 5xx
// se traducen a ErrSolverNoDisponible para que el caso de uso degrade.
func (c *Client) Resolver(ctx context.Context, req pricing.SolverRequest) ([]entity.InstallmentPrice, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("serializar consulta solver: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("armar request solver: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, domain.ErrSolverNoDisponible
		}
		// Timeouts del propio http.Client y fallas de conexión.
		return nil, fmt.Errorf("%w: %v", domain.ErrSolverNoDisponible, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// continúa
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", domain.ErrSolverNoDisponible, resp.StatusCode)
	default:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("solver: status %d: %s", resp.StatusCode, payload)
	}

	var out solverResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decodificar respuesta solver: %w", err)
	}
	return out.Cuotario, nil
}
