package entity

type Machine struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serial_number"`
	MonthlyRate  float64 `json:"monthly_rate"`
}
