// Package cnpj normaliza y valida números de CNPJ (registro de personas jurídicas de Brasil).
package cnpj

import (
	"fmt"
	"unicode"
)

// Len es la cantidad de dígitos de un CNPJ completo.
const Len = 14

// pesos del algoritmo módulo 11 para el primer y segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits devuelve solo los dígitos de s: "11.222.333/0001-81" -> "11222333000181".
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// Validate comprueba longitud y dígitos verificadores. Acepta el número con o sin máscara.
func Validate(s string) error {
	d := Digits(s)
	if len(d) != Len {
		return fmt.Errorf("cnpj: se esperaban %d dígitos, se encontraron %d", Len, len(d))
	}
	if allSame(d) {
		return fmt.Errorf("cnpj: secuencia repetida inválida")
	}
	first := checkDigit(d[:12], firstWeights[:])
	second := checkDigit(d[:12]+string(first), secondWeights[:])
	if d[12] != first || d[13] != second {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recibido %s", first, second, d[12:])
	}
	return nil
}

// Format aplica la máscara 00.000.000/0000-00. Si no tiene 14 dígitos devuelve la entrada tal cual.
func Format(s string) string {
	d := Digits(s)
	if len(d) != Len {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func checkDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
