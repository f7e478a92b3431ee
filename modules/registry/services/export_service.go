package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alphaholdings/entity-registry/pkg/metrics"
)

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat resolves a format query parameter; the empty string
// defaults to CSV.
func ParseExportFormat(v string) (ExportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "csv":
		return ExportFormatCSV, true
	case "xlsx", "excel":
		return ExportFormatXLSX, true
	}
	return "", false
}

// ExportFile is a rendered download: bytes plus the headers the transport
// needs to serve it.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService struct {
	reporting ReportingQueryRepository
}

func NewExportService(reporting ReportingQueryRepository) *ExportService {
	return &ExportService{reporting: reporting}
}

var entityExportHeader = []string{
	"abn", "entity_name", "parent_abn", "entity_type", "status",
	"effective_date", "end_date", "created_by", "created_date",
	"modified_by", "modified_date",
}

func (s *ExportService) Entities(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	rows, err := s.reporting.EntityExportRows(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, entityExportHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.ABN,
			row.Name,
			stringOrEmpty(row.ParentABN),
			row.Kind,
			row.Status,
			exportDate(row.EffectiveDate),
			exportDatePtr(row.EndDate),
			stringOrEmpty(row.CreatedBy),
			exportTimestamp(row.CreatedAt),
			stringOrEmpty(row.ModifiedBy),
			exportTimestampPtr(row.ModifiedAt),
		})
	}
	return s.render(ctx, "legal_entities", format, records)
}

var mappingExportHeader = []string{
	"mapping_id", "reporting_group_code", "reporting_group_name",
	"sector_code", "sector_name", "abn", "entity_name",
	"consolidation_percentage", "effective_date", "end_date", "is_active",
}

func (s *ExportService) Mappings(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	rows, err := s.reporting.MappingDetails(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, mappingExportHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.MappingID,
			row.GroupCode,
			row.GroupName,
			row.SectorCode,
			row.SectorName,
			row.ABN,
			row.EntityName,
			row.Consolidation.StringFixed(2),
			exportDate(row.EffectiveDate),
			exportDatePtr(row.EndDate),
			strconv.FormatBool(row.Active),
		})
	}
	return s.render(ctx, "sector_mappings", format, records)
}

func (s *ExportService) render(_ context.Context, name string, format ExportFormat, records [][]string) (*ExportFile, error) {
	var (
		data []byte
		err  error
		file ExportFile
	)
	switch format {
	case ExportFormatCSV:
		data, err = renderCSV(records)
		file = ExportFile{Name: name + ".csv", ContentType: "text/csv; charset=utf-8"}
	case ExportFormatXLSX:
		data, err = renderXLSX(name, records)
		file = ExportFile{Name: name + ".xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}
	default:
		return nil, newServiceError(400, "EXPORT_INVALID_FORMAT", "format must be csv or xlsx", nil)
	}
	if err != nil {
		return nil, storeError(err)
	}

	file.Data = data
	metrics.ExportedRows.WithLabelValues(string(format)).Add(float64(len(records) - 1))
	return &file, nil
}

func renderCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Excel caps sheet names at 31 characters.
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func exportDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return exportDate(*t)
}

func exportTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func exportTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return exportTimestamp(*t)
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
