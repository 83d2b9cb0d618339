package models

// Document is a supporting snippet with its source label
type Document struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Evidence groups knowledge-graph insights and supporting documents for a client
type Evidence struct {
	Insights  []string   `json:"insights"`
	Documents []Document `json:"documents"`
}
