package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"reflect"
	"regexp"
	"rentalcontracts/cmd/internal/utils"
	"slices"
	"strings"
)

var (
	hasSpaces = regexp.MustCompile(`\s+`)
	cepRegex  = regexp.MustCompile(`^\d{5}-?\d{3}$`)
)

var federativeUnits = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// Register installs every custom tag on v.
func Register(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"cnpj":     CNPJ,
		"cpf":      CPF,
		"uf":       FederativeUnit,
		"cep":      PostalCode,
		"nospaces": NoWhiteSpaces,
		"nodupes":  NoDupes,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// CNPJ accepts formatted ("12.345.678/0001-95") or bare company tax ids.
func CNPJ(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return utils.IsCNPJValid(utils.OnlyDigits(val))
}

// CPF accepts formatted ("529.982.247-25") or bare individual tax ids.
func CPF(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return utils.IsCPFValid(utils.OnlyDigits(val))
}

func FederativeUnit(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return slices.Contains(federativeUnits, strings.ToUpper(val))
}

func PostalCode(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return cepRegex.MatchString(val)
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	return !hasSpaces.MatchString(str)
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}
