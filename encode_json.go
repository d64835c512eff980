package tradedesk

import "encoding/json"

// JSON views of the desk values, used by the -json output of the trade
// command. Amounts are decimal strings, their currency is given once per
// document.

func (m Money) MarshalJSON() ([]byte, error)    { return m.value.MarshalJSON() }
func (q Quantity) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Append("quantity", h.Quantity)
	w.Append("cost", h.Cost)
	return w.MarshalJSON()
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	holdings := s.Holdings
	if holdings == nil {
		holdings = []Holding{}
	}
	var w jsonObjectWriter
	w.Append("currency", s.Cash.Currency())
	w.Append("cash", s.Cash)
	w.Append("holdings", holdings)
	return w.MarshalJSON()
}

func (s Signal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", s.Symbol)
	w.Append("strategy", s.Strategy)
	w.Append("action", s.Action)
	w.Append("price", s.Price)
	w.Optional("rationale", s.Rationale)
	return w.MarshalJSON()
}

func (e Event) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", e.Type)
	w.Append("kind", e.Kind)
	w.Append("symbol", e.Symbol)
	w.Append("quantity", e.Quantity)
	w.Append("price", e.Price)
	w.Append("total", e.Total)
	return w.MarshalJSON()
}

func (x Execution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("filled", x.Filled)
	w.Append("type", x.Type)
	w.Append("kind", x.Kind)
	w.Append("symbol", x.Symbol)
	w.Append("quantity", x.Quantity)
	w.Append("reference", x.Reference)
	if x.Filled {
		w.Append("price", x.Price)
		w.Append("total", x.Total())
	}
	w.Optional("reason", x.Reason)
	return w.MarshalJSON()
}

var (
	_ json.Marshaler = Snapshot{}
	_ json.Marshaler = Signal{}
	_ json.Marshaler = Event{}
	_ json.Marshaler = Execution{}
)
