package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/salon-pro/pkg/money"
)

func TestNewFormatter_LocaleInvalido(t *testing.T) {
	_, err := money.NewFormatter("no existe", "COP")
	assert.Error(t, err, "locale inválido debe rechazarse")
}

func TestNewFormatter_MonedaInvalida(t *testing.T) {
	_, err := money.NewFormatter("es-CO", "XYZ9")
	assert.Error(t, err, "código de moneda inválido debe rechazarse")
}

func TestFormat_IncluyeElMonto(t *testing.T) {
	f, err := money.NewFormatter("es-CO", "COP")
	require.NoError(t, err)

	out := f.Format(decimal.NewFromInt(25000))
	// El separador exacto depende de los datos CLDR; se verifica presencia del monto.
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "25", "el monto formateado debe contener las cifras")
	assert.Equal(t, "COP", f.Currency())
}

func TestFormat_OtrasMonedas(t *testing.T) {
	f, err := money.NewFormatter("en-US", "USD")
	require.NoError(t, err)

	out := f.Format(decimal.NewFromFloat(19.99))
	assert.Contains(t, out, "19", "el monto debe estar presente")
}
