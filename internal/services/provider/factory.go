package provider

import (
	"github.com/okfde/froide-campaign-service/internal/models"
)

// Factory builds providers sharing one store
type Factory struct {
	store  TargetStore
	tagger RequestTagger
	urls   URLConfig
}

// NewFactory creates a new provider factory
func NewFactory(store TargetStore, tagger RequestTagger, urls URLConfig) *Factory {
	return &Factory{
		store:  store,
		tagger: tagger,
		urls:   urls,
	}
}

// ForCampaign creates the provider configured for the campaign
func (f *Factory) ForCampaign(campaign *models.Campaign) (*Provider, error) {
	return New(campaign, f.store, f.tagger, f.urls)
}

// SupportedKinds returns the provider kinds campaigns can use
func SupportedKinds() []Kind {
	return []Kind{
		KindBase,
		KindAmenityLocal,
	}
}
