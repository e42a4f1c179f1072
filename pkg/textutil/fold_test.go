package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

func TestFold_EliminaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "almacen", textutil.Fold("Almacén"))
	assert.Equal(t, "camison", textutil.Fold("CAMISÓN"))
	assert.Equal(t, "nino", textutil.Fold("Niño"))
	assert.Equal(t, "sku-001", textutil.Fold("SKU-001"))
}

func TestFold_TextoSinDiacriticosQuedaIgual(t *testing.T) {
	assert.Equal(t, "gorra logo", textutil.Fold("gorra logo"))
}

func TestSlug_GeneraIdentificadorURLSafe(t *testing.T) {
	assert.Equal(t, "empresa-a", textutil.Slug("Empresa A"))
	assert.Equal(t, "almacen-norte-2", textutil.Slug("Almacén  Norte (2)"))
	assert.Equal(t, "bodega", textutil.Slug("--Bodega--"))
	assert.Equal(t, "", textutil.Slug("¡¡¡"))
}
