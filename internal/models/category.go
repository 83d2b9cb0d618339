package models

// Category is the analysis bucket a free-text query is routed to
type Category string

const (
	CategoryLoan       Category = "loan"
	CategoryInvestment Category = "investment"
	CategoryMortgage   Category = "mortgage"
	CategoryCard       Category = "card"
	CategoryGeneral    Category = "general"
)

// Categories lists every category in classification order
var Categories = []Category{
	CategoryLoan,
	CategoryInvestment,
	CategoryMortgage,
	CategoryCard,
	CategoryGeneral,
}
