package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depo-terminal/internal/application/dto"
)

func TestRawQuantity_AceptaNumeroYTexto(t *testing.T) {
	cases := map[string]dto.RawQuantity{
		`{"quantity": 2.5}`:   "2.5",
		`{"quantity": "2,5"}`: "2,5",
		`{"quantity": ""}`:    "",
		`{"quantity": null}`:  "",
		`{}`:                  "",
	}
	for body, want := range cases {
		var in dto.SetQuantityRequest
		require.NoError(t, json.Unmarshal([]byte(body), &in), body)
		assert.Equal(t, want, in.Quantity, body)
	}

	var in dto.SetQuantityRequest
	assert.Error(t, json.Unmarshal([]byte(`{"quantity": true}`), &in))
}

func TestCollectRequest_LoteEmbebido(t *testing.T) {
	var in dto.CollectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"barcode":"A1","quantity":3,"lotNo":"L-7"}`), &in))
	assert.Equal(t, "A1", in.Barcode)
	assert.Equal(t, dto.RawQuantity("3"), in.Quantity)
	assert.Equal(t, "L-7", in.LotNo)
}

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Limit: 0, Offset: -3}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = dto.PageRequest{Limit: 1000}
	p.DefaultPage()
	assert.Equal(t, 100, p.Limit)
}
