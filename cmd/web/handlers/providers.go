package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/catalog"
)

type RegistryContract interface {
	IsProviderConfigured(id string) bool
}

type Providers struct {
	registry RegistryContract
}

func NewProviders(registry RegistryContract) *Providers {
	return &Providers{registry: registry}
}

type providerView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Region     string   `json:"region"`
	Flow       string   `json:"flow"`
	Currencies []string `json:"currencies"`
	Configured bool     `json:"configured"`
}

// List returns the processors eligible for a region, local rails first.
// Accepts either region=africa|europe|america|australia or a continent
// code; unknown values widen to global rather than failing checkout.
func (h *Providers) List(w http.ResponseWriter, r *http.Request) {
	region := catalog.Region(r.URL.Query().Get("region"))
	switch region {
	case catalog.RegionAfrica, catalog.RegionEurope, catalog.RegionAmerica, catalog.RegionAustralia, catalog.RegionGlobal:
	default:
		region = catalog.RegionFromContinent(r.URL.Query().Get("continent"))
	}

	views := make([]providerView, 0)
	for _, p := range catalog.Eligible(region) {
		views = append(views, providerView{
			ID:         p.ID,
			Name:       p.Name,
			Region:     string(p.Region),
			Flow:       string(p.Flow),
			Currencies: p.Currencies,
			Configured: h.registry != nil && h.registry.IsProviderConfigured(p.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"region": region, "providers": views}); err != nil {
		log.Printf("layer=handler component=providers method=List err=%v", err)
	}
}
