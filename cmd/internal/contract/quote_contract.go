package contract

type QuoteResponse struct {
	MachineID    string  `json:"machine_id"`
	SerialNumber string  `json:"serial_number"`
	MachineName  string  `json:"machine_name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	UnitRate     float64 `json:"unit_rate"`
	// Total keeps full precision; Display is what the page shows.
	Total   float64 `json:"total"`
	Display float64 `json:"display"`
}
