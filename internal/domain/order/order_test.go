package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiscalProductID(t *testing.T) {
	cases := []struct {
		name   string
		meta   map[string]string
		wantID string
		wantOK bool
	}{
		{"present", map[string]string{MetaFiscalProductID: "55"}, "55", true},
		{"sentinel", map[string]string{MetaFiscalProductID: NonFiscalSentinel}, "", false},
		{"empty value", map[string]string{MetaFiscalProductID: ""}, "", false},
		{"absent key", map[string]string{"color": "red"}, "", false},
		{"nil metadata", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Position{Item: Item{Metadata: tc.meta}}
			id, ok := p.FiscalProductID()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "GA-2026", Item{Name: "Ticket", InternalName: "GA-2026"}.DisplayName())
	assert.Equal(t, "Ticket", Item{Name: "Ticket"}.DisplayName())
}
