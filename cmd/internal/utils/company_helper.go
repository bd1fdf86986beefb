package utils

import "strings"

const (
	CNPJLength = 14
	CPFLength  = 11
)

func IsCNPJValid(cnpj string) bool {
	if len(cnpj) != CNPJLength {
		return false
	}

	if !IsOnlyNumbers(cnpj) {
		return false
	}

	// Reject known invalid patterns that trick the math algorithm
	if hasAllSameDigits(cnpj) {
		return false
	}
	return validateCNPJDigits(cnpj)
}

// IsCPFValid checks an individual's tax id (digits only) against its two
// verifying digits.
func IsCPFValid(cpf string) bool {
	if len(cpf) != CPFLength || !IsOnlyNumbers(cpf) {
		return false
	}

	if hasAllSameDigits(cpf) {
		return false
	}

	digit1 := calculateCPFDigit(cpf[:9], 10)
	digit2 := calculateCPFDigit(cpf[:10], 11)
	return digit1 == int(cpf[9]-'0') && digit2 == int(cpf[10]-'0')
}

func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// OnlyDigits strips punctuation from formatted documents, so
// "12.345.678/0001-95" becomes "12345678000195".
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasAllSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func validateCNPJDigits(cnpj string) bool {
	// RFB weights for the first verifying digit
	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	// RFB weights for the second verifying digit
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	digit1 := calculateCNPJDigit(cnpj[:12], weights1)
	digit2 := calculateCNPJDigit(cnpj[:13], weights2)

	actualDigit1 := int(cnpj[12] - '0')
	actualDigit2 := int(cnpj[13] - '0')

	return digit1 == actualDigit1 && digit2 == actualDigit2
}

func calculateCNPJDigit(base string, weights []int) int {
	sum := 0
	for i, weight := range weights {
		// Convert ASCII character to integer ('5' -> 5)
		digit := int(base[i] - '0')
		sum += digit * weight
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// CPF weights start at firstWeight and decrease by one per digit.
func calculateCPFDigit(base string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (firstWeight - i)
	}

	remainder := (sum * 10) % 11
	if remainder == 10 {
		return 0
	}
	return remainder
}
