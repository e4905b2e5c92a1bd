package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

const targetSheetName = "Targets"

// ProviderSource resolves the provider of a campaign
type ProviderSource interface {
	ProviderFor(ctx context.Context, campaignID uint) (*provider.Provider, error)
}

// TargetLister lists all targets of a campaign
type TargetLister interface {
	ListForExport(ctx context.Context, campaignID uint) ([]*models.InformationObject, error)
}

// Service exports campaign targets to Excel workbooks
type Service struct {
	providers ProviderSource
	targets   TargetLister
}

// NewExcelService creates a new Excel service instance
func NewExcelService(providers ProviderSource, targets TargetLister) *Service {
	return &Service{
		providers: providers,
		targets:   targets,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Filename string
	Data     *bytes.Buffer
}

var targetColumns = []string{
	"id", "ident", "title", "subtitle", "address", "publicbody_name",
	"lat", "lng", "resolution", "foirequest_id", "foirequest_count", "request_url",
}

// ExportCampaign writes all targets of a campaign with their request state
func (s *Service) ExportCampaign(ctx context.Context, campaignID uint) (*ExportResult, error) {
	prov, err := s.providers.ProviderFor(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	iobjs, err := s.targets.ListForExport(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	items, err := prov.ItemsFor(ctx, iobjs)
	if err != nil {
		return nil, err
	}

	f, err := WriteTargets(items)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &ExportResult{
		Filename: fmt.Sprintf("campaign_%s_%d.xlsx", prov.Campaign().Slug, time.Now().Unix()),
		Data:     buf,
	}, nil
}

// WriteTargets builds a workbook with one row per target
func WriteTargets(items []models.ProviderItem) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), targetSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	for i, col := range targetColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(targetSheetName, cell, col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(targetColumns), 1)
		f.SetCellStyle(targetSheetName, "A1", last, headerStyle)
	}

	resolutionStyles := map[string]int{}
	for resolution, color := range map[string]string{
		models.ResolutionSuccessful: "C6EFCE", // green
		models.ResolutionRefused:    "D9D9D9", // gray
		models.ResolutionPending:    "FFEB9C", // yellow
	} {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err == nil {
			resolutionStyles[resolution] = style
		}
	}

	for i, col := range targetColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := 20.0
		switch col {
		case "id", "lat", "lng", "foirequest_id", "foirequest_count":
			width = 12.0
		case "title", "address", "publicbody_name":
			width = 40.0
		case "request_url":
			width = 50.0
		}
		f.SetColWidth(targetSheetName, name, name, width)
	}

	for j, item := range items {
		row := j + 2
		values := []interface{}{
			item.ID, item.Ident, item.Title, item.Subtitle, item.Address, item.PublicBodyName,
			floatOrEmpty(item.Lat), floatOrEmpty(item.Lng), item.Resolution,
			uintOrEmpty(item.FoiRequest), len(item.FoiRequests), item.RequestURL,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(targetSheetName, start, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}

		if style, ok := resolutionStyles[item.Resolution]; ok {
			cell, _ := excelize.CoordinatesToCellName(9, row)
			f.SetCellStyle(targetSheetName, cell, cell, style)
		}
	}

	if len(items) == 0 {
		f.SetCellValue(targetSheetName, "A2", "no targets in this campaign")
	}
	return f, nil
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func uintOrEmpty(v *uint) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
