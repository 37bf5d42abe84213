package repositories

import (
	"testing"

	"nandighosh/internal/domain/models"
)

func TestRouteCatalogByID(t *testing.T) {
	catalog := NewRouteCatalog()
	cases := []struct {
		id    string
		name  string
		price int64
	}{
		{"balasore-sambalpur", "Balasore to Sambalpur", 450},
		{"balasore-jamshedpur", "Balasore to Jamshedpur", 280},
		{"balasore-berhampur", "Balasore to Berhampur", 380},
	}
	for _, tc := range cases {
		r, ok := catalog.ByID(tc.id)
		if !ok {
			t.Fatalf("route %q not found", tc.id)
		}
		if r.Name != tc.name || r.Price != tc.price {
			t.Fatalf("route %q = %+v", tc.id, r)
		}
		byName, ok := catalog.ByName(tc.name)
		if !ok || byName.ID != tc.id {
			t.Fatalf("ByName(%q) = %+v, %v", tc.name, byName, ok)
		}
	}
	if _, ok := catalog.ByID("balasore-puri"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}

func TestRouteCatalogAllIsACopy(t *testing.T) {
	catalog := NewRouteCatalog()
	all := catalog.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(all))
	}
	all[0].Price = 1
	if r, _ := catalog.ByID(all[0].ID); r.Price == 1 {
		t.Fatalf("All must not expose the backing slice")
	}
}

func TestRouteCatalogCustomRoutes(t *testing.T) {
	catalog := RouteCatalog{Routes: []models.RouteOffering{{ID: "x", Name: "X to Y", Price: 10}}}
	if _, ok := catalog.ByID("balasore-sambalpur"); ok {
		t.Fatalf("custom catalog should not fall back to defaults")
	}
	if r, ok := catalog.ByName(" X to Y "); !ok || r.ID != "x" {
		t.Fatalf("ByName should trim input")
	}
}
