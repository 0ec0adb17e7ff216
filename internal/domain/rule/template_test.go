package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		record   map[string]interface{}
		want     string
	}{
		{
			name:     "unmatched tokens pass through verbatim",
			template: "Stock: {stock} units, ref {missing_field}",
			record:   map[string]interface{}{"stock": 5},
			want:     "Stock: 5 units, ref {missing_field}",
		},
		{
			name:     "multiple substitutions",
			template: "Invoice {invoice_number} for {client_name}",
			record:   map[string]interface{}{"invoice_number": "INV-001", "client_name": "Acme"},
			want:     "Invoice INV-001 for Acme",
		},
		{
			name:     "float values drop trailing zeros",
			template: "{amount} due",
			record:   map[string]interface{}{"amount": float64(1250)},
			want:     "1250 due",
		},
		{
			name:     "fractional amounts keep their digits",
			template: "{amount} due",
			record:   map[string]interface{}{"amount": 12.5},
			want:     "12.5 due",
		},
		{
			name:     "no tokens",
			template: "nothing to replace",
			record:   map[string]interface{}{"stock": 5},
			want:     "nothing to replace",
		},
		{
			name:     "nil record leaves everything",
			template: "Stock: {stock}",
			record:   nil,
			want:     "Stock: {stock}",
		},
		{
			name:     "token in URL path",
			template: "/invoices/{entity_id}",
			record:   map[string]interface{}{"entity_id": "inv-42"},
			want:     "/invoices/inv-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.template, tt.record))
		})
	}
}
