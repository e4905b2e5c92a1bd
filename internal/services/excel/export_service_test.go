package excel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

func TestWriteTargets(t *testing.T) {
	lat, lng := 52.52, 13.4
	frID := uint(100)
	items := []models.ProviderItem{
		{
			ID:             1,
			Ident:          "school-1",
			Title:          "Grundschule am Park",
			PublicBodyName: "Senat",
			Lat:            &lat,
			Lng:            &lng,
			Resolution:     models.ResolutionSuccessful,
			FoiRequest:     &frID,
			FoiRequests:    []models.RequestLink{{ID: 100, Resolution: models.ResolutionSuccessful}, {ID: 101}},
			RequestURL:     "/campaign/4/school-1/request/",
		},
		{ID: 2, Ident: "school-2", Title: "Oberschule"},
	}

	f, err := WriteTargets(items)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, targetSheetName, f.GetSheetName(0))

	rows, err := f.GetRows(targetSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, targetColumns, rows[0])

	get := func(cell string) string {
		v, err := f.GetCellValue(targetSheetName, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "school-1", get("B2"))
	assert.Equal(t, "Senat", get("F2"))
	assert.Equal(t, "52.52", get("G2"))
	assert.Equal(t, models.ResolutionSuccessful, get("I2"))
	assert.Equal(t, "100", get("J2"))
	assert.Equal(t, "2", get("K2"))
	assert.Equal(t, "/campaign/4/school-1/request/", get("L2"))

	assert.Equal(t, "", get("G3"))
	assert.Equal(t, "", get("J3"))
	assert.Equal(t, "0", get("K3"))
}

func TestWriteTargets_Empty(t *testing.T) {
	f, err := WriteTargets(nil)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(targetSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "no targets in this campaign", v)
}

type exportStore struct{}

func (exportStore) Search(context.Context, repository.TargetQuery) ([]*models.InformationObject, error) {
	return nil, nil
}

func (exportStore) GetByIdent(context.Context, uint, string) (*models.InformationObject, error) {
	return nil, errors.New("unused")
}

func (exportStore) RequestLinks(context.Context, []uint) ([]repository.TargetRequestLink, error) {
	return nil, nil
}

func (exportStore) LinkRequest(context.Context, uint, uint) (bool, error) {
	return false, nil
}

type fakeProviders struct {
	prov *provider.Provider
	err  error
}

func (f fakeProviders) ProviderFor(context.Context, uint) (*provider.Provider, error) {
	return f.prov, f.err
}

type fakeTargets []*models.InformationObject

func (f fakeTargets) ListForExport(context.Context, uint) ([]*models.InformationObject, error) {
	return f, nil
}

func TestService_ExportCampaign(t *testing.T) {
	prov, err := provider.New(&models.Campaign{ID: 4, Slug: "schulen"}, exportStore{}, nil, provider.URLConfig{})
	require.NoError(t, err)

	svc := NewExcelService(fakeProviders{prov: prov}, fakeTargets{
		{ID: 1, CampaignID: 4, Ident: "school-1", Title: "Grundschule"},
	})
	result, err := svc.ExportCampaign(context.Background(), 4)
	require.NoError(t, err)
	assert.Regexp(t, `^campaign_schulen_\d+\.xlsx$`, result.Filename)

	f, err := excelize.OpenReader(result.Data)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(targetSheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "school-1", v)
}

func TestService_ExportCampaign_ProviderError(t *testing.T) {
	boom := errors.New("campaign not found")
	svc := NewExcelService(fakeProviders{err: boom}, fakeTargets{})
	_, err := svc.ExportCampaign(context.Background(), 4)
	assert.ErrorIs(t, err, boom)
}
