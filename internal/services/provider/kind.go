package provider

import (
	"github.com/okfde/froide-campaign-service/internal/models"

	"github.com/sirupsen/logrus"
)

// Kind selects the provider behaviour of a campaign
type Kind string

const (
	// KindBase serves the targets stored for the campaign
	KindBase Kind = "base"
	// KindAmenityLocal serves stored targets and lets users add new locations
	KindAmenityLocal Kind = "amenity_local"
)

// Config is the provider configuration of one campaign
type Config struct {
	Kind          Kind
	LawType       string
	Limit         int
	CreateAllowed bool
}

// ConfigFromCampaign resolves the provider kind and keyword arguments of a campaign
func ConfigFromCampaign(c *models.Campaign) Config {
	cfg := Config{Kind: KindBase}

	switch Kind(c.ProviderKind) {
	case KindBase, "":
	case KindAmenityLocal:
		cfg.Kind = KindAmenityLocal
		cfg.CreateAllowed = true
	default:
		logrus.Warnf("Unknown provider %q for campaign %d, using base provider", c.ProviderKind, c.ID)
	}

	cfg.LawType = c.ProviderKwargs.String("law_type")
	if limit, ok := c.ProviderKwargs["limit"].(float64); ok && limit > 0 {
		cfg.Limit = int(limit)
	}
	return cfg
}
