package provider

import (
	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
)

// bucketLinks buckets request links by target id, keeping link order
func bucketLinks(links []repository.TargetRequestLink) map[uint][]models.RequestLink {
	mapping := make(map[uint][]models.RequestLink)
	for _, l := range links {
		mapping[l.InformationObjectID] = append(mapping[l.InformationObjectID], models.RequestLink{
			ID:         l.FoiRequestID,
			Resolution: l.Resolution,
		})
	}
	return mapping
}

// foiRequestInfo derives the effective request of a target: the first
// successful request, else the last refused one, else the first request as
// pending. It returns nil and "" for no requests.
func foiRequestInfo(frs []models.RequestLink) (*uint, string) {
	if len(frs) == 0 {
		return nil, ""
	}

	var refused *uint
	for i := range frs {
		switch frs[i].Resolution {
		case models.ResolutionSuccessful:
			id := frs[i].ID
			return &id, models.ResolutionSuccessful
		case models.ResolutionRefused:
			id := frs[i].ID
			refused = &id
		}
	}
	if refused != nil {
		return refused, models.ResolutionRefused
	}

	id := frs[0].ID
	return &id, models.ResolutionPending
}
