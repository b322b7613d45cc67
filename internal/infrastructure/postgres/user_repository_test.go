package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow permite ejercitar scanUser sin una conexión real.
type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func filledRow(overrides []byte) fakeRow {
	return fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "u-1"
		*dest[1].(*string) = "vendedor@comisiones.local"
		*dest[2].(*string) = "$2a$10$hash"
		*dest[3].(*string) = "Vendedor Uno"
		*dest[4].(*string) = "vendedor"
		*dest[5].(*[]byte) = overrides
		*dest[6].(*string) = "active"
		*dest[7].(*time.Time) = time.Now()
		*dest[8].(*time.Time) = time.Now()
		return nil
	}}
}

func TestScanUser_SinFilasDevuelveNilNil(t *testing.T) {
	u, err := scanUser(fakeRow{scan: func(...any) error { return pgx.ErrNoRows }})
	assert.NoError(t, err, "usuario inexistente no es error")
	assert.Nil(t, u)
}

func TestScanUser_ErrorDeScanSePropaga(t *testing.T) {
	boom := errors.New("conexión caída")
	u, err := scanUser(fakeRow{scan: func(...any) error { return boom }})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, u)
}

func TestScanUser_OverridesSeDeserializan(t *testing.T) {
	u, err := scanUser(filledRow([]byte(`{"ver_historial":true,"calcular_precios":false}`)))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "vendedor@comisiones.local", u.Email)
	assert.Equal(t, map[string]bool{"ver_historial": true, "calcular_precios": false}, u.Overrides)
}

func TestScanUser_OverridesCorruptosFallan(t *testing.T) {
	u, err := scanUser(filledRow([]byte(`{"ver_historial"`)))
	assert.Error(t, err)
	assert.Nil(t, u)
}
