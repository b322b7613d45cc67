package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comisiones-api/internal/domain/pricing"
)

// TestProjectMatrix_TasasPorGrupo la matriz muestra lista 4 y base+adicional
// para cada cantidad de cuotas, ordenada por grupo.
func TestProjectMatrix_TasasPorGrupo(t *testing.T) {
	matriz := pricing.ProjectMatrix(buildEsquema())
	require.Len(t, matriz, 2)

	assert.Equal(t, 1, matriz[0].Grupo)
	assert.Equal(t, 2, matriz[1].Grupo)

	assert.True(t, matriz[0].Lista4.Equal(dec("13")))
	assert.True(t, matriz[0].Cuotas[3].Equal(dec("18.5")))
	assert.True(t, matriz[0].Cuotas[6].Equal(dec("22")))
	assert.True(t, matriz[0].Cuotas[9].Equal(dec("25.5")))
	assert.True(t, matriz[0].Cuotas[12].Equal(dec("28.5")))

	assert.True(t, matriz[1].Lista4.Equal(dec("10")))
	assert.True(t, matriz[1].Cuotas[12].Equal(dec("25.5")))
}

// TestProjectMatrix_AplicaAVersionesHistoricas la proyección es una vista
// derivada: sirve igual sobre una versión cerrada (histórica).
func TestProjectMatrix_AplicaAVersionesHistoricas(t *testing.T) {
	esquema := buildEsquema()
	esquema.Cerrar(esquema.CreadoEn) // versión superada
	require.False(t, esquema.Activa())

	matriz := pricing.ProjectMatrix(esquema)
	require.Len(t, matriz, 2)
	assert.True(t, matriz[0].Lista4.Equal(dec("13")))
}
