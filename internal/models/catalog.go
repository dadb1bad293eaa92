package models

// Category is a browsable product group shown on the home page.
type Category struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int64  `json:"count"`
}

// DefaultCategories is the fixed category list. It is not sourced from
// the catalog API yet.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Electronics", Icon: "fa-laptop", Count: 12500},
		{Name: "Fashion", Icon: "fa-tshirt", Count: 8900},
		{Name: "Watches", Icon: "fa-clock", Count: 3200},
		{Name: "Beauty", Icon: "fa-spa", Count: 6700},
	}
}

// AnalyticsSummary is the read-only admin summary.
type AnalyticsSummary struct {
	TotalClicks int64   `json:"totalClicks"`
	Revenue     float64 `json:"revenue"`
	TodayClicks int64   `json:"todayClicks,omitempty"`
	Conversions int64   `json:"conversions,omitempty"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ClickRequest struct {
	ProductID string `json:"productId,omitempty"`
}
