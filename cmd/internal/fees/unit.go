package fees

import "strings"

type Unit string

const (
	UnitNone  Unit = ""
	UnitHour  Unit = "HOUR"
	UnitDay   Unit = "DAY"
	UnitWeek  Unit = "WEEK"
	UnitMonth Unit = "MONTH"
)

// Units lists every selectable unit, shortest first.
var Units = []Unit{UnitHour, UnitDay, UnitWeek, UnitMonth}

// ParseUnit maps user input to a Unit. Anything it does not recognise
// (including the "select a term" placeholder) is UnitNone.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hours", "hora", "horas":
		return UnitHour
	case "day", "days", "dia", "dias":
		return UnitDay
	case "week", "weeks", "semana", "semanas":
		return UnitWeek
	case "month", "months", "mes", "mês", "meses":
		return UnitMonth
	default:
		return UnitNone
	}
}

func (u Unit) Valid() bool {
	switch u {
	case UnitHour, UnitDay, UnitWeek, UnitMonth:
		return true
	}
	return false
}
