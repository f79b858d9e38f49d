package catalogfile_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/catalogfile"
)

func TestRead_PuntoYComaLatin1(t *testing.T) {
	// "Cerámica" y "Baño" en Windows-1252 (á=0xE1, ñ=0xF1).
	raw := []byte("categoria;nombre;medida;precio;stock;umbral\r\n" +
		"Cer\xe1mica;Ba\xf1o Blanco;30x30;1.234,50;12;4\r\n" +
		";;;;;\r\n" +
		"Porcelanato;Gris 60;60x60;25,5;0;\r\n")

	rows, err := catalogfile.Read(bytes.NewReader(raw), catalogfile.EncodingAuto)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Cerámica", rows[0].Category)
	assert.Equal(t, "Baño Blanco", rows[0].Name)
	assert.Equal(t, "30x30", rows[0].Size)
	assert.True(t, decimal.RequireFromString("1234.50").Equal(rows[0].Price))
	assert.Equal(t, 12, rows[0].StockQuantity)
	require.NotNil(t, rows[0].LowStockThreshold)
	assert.Equal(t, 4, *rows[0].LowStockThreshold)
	assert.Equal(t, 2, rows[0].Line)

	assert.True(t, decimal.RequireFromString("25.5").Equal(rows[1].Price))
	assert.Nil(t, rows[1].LowStockThreshold, "umbral vacío usa el valor por defecto")
	assert.Equal(t, 4, rows[1].Line)
}

func TestRead_ComaUTF8ConBOMYOrdenDeColumnas(t *testing.T) {
	in := "\ufeffNombre,Precio,Stock,Categoria\nAzul mate,10.00,5,Azulejos\n"

	rows, err := catalogfile.Read(strings.NewReader(in), catalogfile.EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Azulejos", rows[0].Category)
	assert.Equal(t, "Azul mate", rows[0].Name)
	assert.Equal(t, "", rows[0].Size)
	assert.Equal(t, 5, rows[0].StockQuantity)
}

func TestRead_Errores(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"vacío", "", "vacío"},
		{"columnas faltantes", "categoria;nombre\nA;B\n", "precio, stock"},
		{"precio inválido", "categoria;nombre;precio;stock\nA;B;abc;1\n", "línea 2"},
		{"precio negativo", "categoria;nombre;precio;stock\nA;B;-1;1\n", "precio inválido"},
		{"stock negativo", "categoria;nombre;precio;stock\nA;B;1;-3\n", "stock inválido"},
		{"sin nombre", "categoria;nombre;precio;stock\nA;;1;1\n", "obligatorios"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalogfile.Read(strings.NewReader(tc.in), catalogfile.EncodingAuto)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRead_UTF8EstrictoRechazaLatin1(t *testing.T) {
	raw := []byte("categoria;nombre;precio;stock\nCer\xe1mica;X;1;1\n")
	_, err := catalogfile.Read(bytes.NewReader(raw), catalogfile.EncodingUTF8)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rows, err := catalogfile.Read(bytes.NewReader(raw), catalogfile.EncodingLatin1)
	require.NoError(t, err)
	assert.Equal(t, "Cerámica", rows[0].Category)
}

func TestParseEncoding_NombresAceptados(t *testing.T) {
	for in, want := range map[string]catalogfile.Encoding{
		"":           catalogfile.EncodingAuto,
		"UTF8":       catalogfile.EncodingUTF8,
		"ISO-8859-1": catalogfile.EncodingLatin1,
		"cp1252":     catalogfile.EncodingLatin1,
	} {
		got, err := catalogfile.ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := catalogfile.ParseEncoding("ebcdic")
	assert.Error(t, err)
}
