package repositories

import (
	"strings"

	"nandighosh/internal/domain/models"
)

// defaultRoutes is the fixed catalog. It is build-time data: there is no
// create/update/delete for routes.
var defaultRoutes = []models.RouteOffering{
	{
		ID:       "balasore-sambalpur",
		Name:     "Balasore to Sambalpur",
		Price:    450,
		Duration: "8 hours",
		Service:  "Daily Service",
		Tagline:  "Comfortable journey through scenic Odisha",
	},
	{
		ID:       "balasore-jamshedpur",
		Name:     "Balasore to Jamshedpur",
		Price:    280,
		Duration: "4 hours",
		Service:  "Express Service",
		Tagline:  "Quick interstate connection",
	},
	{
		ID:       "balasore-berhampur",
		Name:     "Balasore to Berhampur",
		Price:    380,
		Duration: "6 hours",
		Service:  "Luxury Service",
		Tagline:  "Coastal route with premium comfort",
	},
}

// RouteCatalog serves the static route list. The zero value uses the
// default catalog.
type RouteCatalog struct {
	Routes []models.RouteOffering
}

func NewRouteCatalog() RouteCatalog {
	return RouteCatalog{Routes: defaultRoutes}
}

func (c RouteCatalog) routes() []models.RouteOffering {
	if c.Routes != nil {
		return c.Routes
	}
	return defaultRoutes
}

// All returns a copy of the catalog in display order.
func (c RouteCatalog) All() []models.RouteOffering {
	src := c.routes()
	out := make([]models.RouteOffering, len(src))
	copy(out, src)
	return out
}

// ByID resolves the id used by the "Book Now" buttons.
func (c RouteCatalog) ByID(id string) (models.RouteOffering, bool) {
	id = strings.TrimSpace(id)
	for _, r := range c.routes() {
		if r.ID == id {
			return r, true
		}
	}
	return models.RouteOffering{}, false
}

// ByName resolves the display name stored in a booking draft.
func (c RouteCatalog) ByName(name string) (models.RouteOffering, bool) {
	name = strings.TrimSpace(name)
	for _, r := range c.routes() {
		if r.Name == name {
			return r, true
		}
	}
	return models.RouteOffering{}, false
}
