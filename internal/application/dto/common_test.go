package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duquediazn/tabula-backend/internal/application/dto"
)

func TestDate_FechaVaciaEquivaleAAusente(t *testing.T) {
	var line dto.MovementLineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"codigo_almacen":1,"codigo_producto":2,"fecha_cad":"","cantidad":3}`), &line))

	assert.Nil(t, line.FechaCad.TimePtr())
}

func TestDate_NullYOmitidaSinFecha(t *testing.T) {
	for _, body := range []string{
		`{"codigo_almacen":1,"codigo_producto":2,"fecha_cad":null,"cantidad":3}`,
		`{"codigo_almacen":1,"codigo_producto":2,"cantidad":3}`,
	} {
		var line dto.MovementLineRequest
		require.NoError(t, json.Unmarshal([]byte(body), &line))
		assert.Nil(t, line.FechaCad.TimePtr(), body)
	}
}

func TestDate_FechaValida(t *testing.T) {
	var line dto.MovementLineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fecha_cad":"2026-05-31"}`), &line))

	got := line.FechaCad.TimePtr()
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), *got)
}

func TestDate_FormatoInvalido(t *testing.T) {
	var line dto.MovementLineRequest
	err := json.Unmarshal([]byte(`{"fecha_cad":"31/05/2026"}`), &line)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDate_MarshalSoloFecha(t *testing.T) {
	b, err := json.Marshal(dto.NewDate(time.Date(2026, time.May, 31, 18, 45, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-05-31"`, string(b))
}
