package fees

// Worksheet follows a quote form: every change of unit or quantity replaces
// the current quote with a freshly computed one.
type Worksheet struct {
	rates    RateTable
	unit     Unit
	quantity float64
	current  Quote
}

func NewWorksheet(rates RateTable) *Worksheet {
	return &Worksheet{rates: rates}
}

func (w *Worksheet) SetUnit(unit Unit) Quote {
	w.unit = unit
	return w.recompute()
}

func (w *Worksheet) SetQuantity(quantity float64) Quote {
	w.quantity = quantity
	return w.recompute()
}

func (w *Worksheet) SetRates(rates RateTable) Quote {
	w.rates = rates
	return w.recompute()
}

func (w *Worksheet) Current() Quote {
	return w.current
}

func (w *Worksheet) recompute() Quote {
	w.current = Calculate(w.rates, w.unit, w.quantity)
	return w.current
}
