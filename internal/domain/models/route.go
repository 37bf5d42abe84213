package models

// RouteOffering is one bookable route shown on the landing page.
// Price is in whole rupees per passenger.
type RouteOffering struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration string `json:"duration"`
	Service  string `json:"service"`
	Tagline  string `json:"tagline"`
}
