package services

import (
	"fmt"
	"math"
	"strings"
)

// AmountToWords converts a peso amount to the Spanish legal wording
// used on printed quotations.
// Example: 1200.50 → "UN MIL DOSCIENTOS PESOS 50/100 M.N."
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "MENOS " + AmountToWords(-amount)
	}

	pesos := int64(math.Floor(amount))
	centavos := int64(math.Round((amount - float64(pesos)) * 100))
	if centavos >= 100 {
		pesos++
		centavos -= 100
	}

	var words string
	switch {
	case pesos == 0:
		words = "CERO PESOS"
	case pesos == 1:
		words = "UN PESO"
	default:
		words = convertToSpanishWords(pesos) + " PESOS"
	}

	return fmt.Sprintf("%s %02d/100 M.N.", words, centavos)
}

func convertToSpanishWords(n int64) string {
	var parts []string

	if n >= 1000000 {
		millions := n / 1000000
		if millions == 1 {
			parts = append(parts, "UN MILLON")
		} else {
			parts = append(parts, apocope(convertUnder1000Group(millions))+" MILLONES")
		}
		n %= 1000000
	}

	if n >= 1000 {
		thousands := n / 1000
		// Invoice convention keeps the explicit "UN MIL".
		parts = append(parts, apocope(convertUnder1000Group(thousands))+" MIL")
		n %= 1000
	}

	if n > 0 {
		parts = append(parts, convertUnder1000(n))
	}

	return strings.Join(parts, " ")
}

// convertUnder1000Group spells a 1-999 multiplier group (for MIL and
// MILLONES), where 1 must read "UN" rather than "UNO".
func convertUnder1000Group(n int64) string {
	if n == 1 {
		return "UN"
	}
	return convertUnder1000(n)
}

// apocope turns a trailing "UNO" into "UN" ("VEINTIUN MIL", not
// "VEINTIUNO MIL").
func apocope(s string) string {
	if strings.HasSuffix(s, "UNO") {
		return strings.TrimSuffix(s, "UNO") + "UN"
	}
	return s
}

func convertUnder1000(n int64) string {
	if n == 100 {
		return "CIEN"
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, hundreds[n/100])
		n %= 100
	}
	if n > 0 {
		parts = append(parts, convertUnder100(n))
	}
	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n <= 20 {
		return unidades[n]
	}
	if n < 30 {
		return "VEINTI" + unidades[n%10]
	}
	result := decenas[n/10]
	if n%10 != 0 {
		result += " Y " + unidades[n%10]
	}
	return result
}

var unidades = []string{
	"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO",
	"NUEVE", "DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE",
	"DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE", "VEINTE",
}

var decenas = []string{
	"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA",
	"OCHENTA", "NOVENTA",
}

var hundreds = []string{
	"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS",
	"QUINIENTOS", "SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS",
	"NOVECIENTOS",
}
