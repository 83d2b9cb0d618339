package models

// Analysis is the full response of one dashboard query
type Analysis struct {
	Query    string         `json:"query"`
	Category Category       `json:"category"`
	Result   AnalysisResult `json:"result"`
	Evidence Evidence       `json:"evidence"`
}

// ReferenceRate represents the central bank key rate plus bank margin
type ReferenceRate struct {
	KeyRate   float64 `json:"key_rate"`
	Margin    float64 `json:"margin"`
	Effective float64 `json:"effective_rate"`
}
