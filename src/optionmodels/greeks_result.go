package optionmodels

// GreeksResult is the output of a Black-Scholes pricing call. D1 and
// D2 are retained so downstream probability calculations can reuse
// them without re-deriving.
type GreeksResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
	D1    float64 `json:"d1"`
	D2    float64 `json:"d2"`
}
