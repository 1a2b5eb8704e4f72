package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const complianceSheet = "Compliance"

// ReportService renders compliance check results as downloadable files.
type ReportService interface {
	ExportComplianceXLSX(ctx context.Context, input *CheckComplianceInput) ([]byte, error)
}

type reportService struct {
	compliance ComplianceService
}

// NewReportService creates a new ReportService implementation.
func NewReportService(compliance ComplianceService) ReportService {
	return &reportService{compliance: compliance}
}

// ExportComplianceXLSX runs the compliance check and renders one worksheet
// with a row per issue plus the aggregate counts.
func (s *reportService) ExportComplianceXLSX(ctx context.Context, input *CheckComplianceInput) ([]byte, error) {
	report, err := s.compliance.CheckCompliance(ctx, input)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(complianceSheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Entity Code", "Document Type", "Error Type", "Message"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(complianceSheet, cell, h)
	}

	for row, issue := range report.Errors {
		values := []interface{}{issue.EntityCode, issue.DocumentType, string(issue.ErrorType), issue.Message}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(complianceSheet, cell, v)
		}
	}

	summaryRow := len(report.Errors) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(complianceSheet, cell, fmt.Sprintf("Entities with issues: %d", report.ValidatedEntities))
	cell, _ = excelize.CoordinatesToCellName(1, summaryRow+1)
	_ = f.SetCellValue(complianceSheet, cell, fmt.Sprintf("Total issues: %d", report.TotalErrors))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
