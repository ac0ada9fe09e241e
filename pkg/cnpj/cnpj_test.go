package cnpj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/portal-notas/pkg/cnpj"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"con máscara", "11.222.333/0001-81", false},
		{"solo dígitos", "11222333000181", false},
		{"dígito incorrecto", "11.222.333/0001-82", true},
		{"corto", "1122233300018", true},
		{"repetido", "00000000000000", true},
		{"vacío", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cnpj.Validate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatYDigits(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", cnpj.Format("11222333000181"))
	assert.Equal(t, "123", cnpj.Format("123"))
	assert.Equal(t, "11222333000181", cnpj.Digits(" 11.222.333/0001-81 "))
}
