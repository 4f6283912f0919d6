package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

const (
	admissionSheet = "Admission"
	criteriaSheet  = "Criteria"
)

// AdmissionExportService renders admission results as spreadsheets
type AdmissionExportService interface {
	ExportCourseAdmission(ctx context.Context, courseID string) ([]byte, error)
}

type admissionExportService struct {
	admission AdmissionStatusService
	logger    *ServiceLogger
}

func NewAdmissionExportService(admission AdmissionStatusService, logger *slog.Logger) AdmissionExportService {
	return &admissionExportService{
		admission: admission,
		logger:    NewServiceLogger(logger, LogConfig{Service: "admission-service", Component: "admission_export"}),
	}
}

// ExportCourseAdmission returns an XLSX workbook with one row per student and
// a second sheet describing the criteria
func (s *admissionExportService) ExportCourseAdmission(ctx context.Context, courseID string) (data []byte, err error) {
	op := s.logger.WithOperation(ctx, "export_course_admission", courseID, "")
	defer func() { op.LogResult(err) }()

	criteria, err := s.admission.GetAdmissionCriteria(ctx, courseID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.admission.GetAdmissionStatusOfCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Sheet1 always exists in a new workbook
	if err := f.SetSheetName("Sheet1", admissionSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}

	if err := writeAdmissionSheet(f, headerStyle, criteria, statuses); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(criteriaSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeCriteriaSheet(f, headerStyle, criteria); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func writeAdmissionSheet(f *excelize.File, headerStyle int, criteria models.AdmissionRules, statuses []*models.AdmissionStatus) error {
	headers := []string{"User ID", "Username", "Admitted"}
	for i, rule := range criteria {
		label := fmt.Sprintf("Rule %d %s", i+1, rule.FilterType())
		headers = append(headers, label+" Achieved", label+" Percent", label+" Passed")
	}
	headers = append(headers, "Warnings")

	if err := writeRow(f, admissionSheet, 1, toRow(headers)); err != nil {
		return err
	}
	if err := styleHeader(f, admissionSheet, len(headers), headerStyle); err != nil {
		return err
	}

	for i, status := range statuses {
		row := []interface{}{status.UserID, status.Username, yesNo(status.HasAdmission)}
		for _, result := range status.Results {
			row = append(row, result.AchievedPoints, result.AchievedPercent, yesNo(result.Passed))
		}
		row = append(row, len(uniqueWarnings(status.Results)))

		if err := writeRow(f, admissionSheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func writeCriteriaSheet(f *excelize.File, headerStyle int, criteria models.AdmissionRules) error {
	headers := []string{"Rule", "Type", "Assignment Type", "Required Percent", "Passed Assignments Percent"}
	if err := writeRow(f, criteriaSheet, 1, toRow(headers)); err != nil {
		return err
	}
	if err := styleHeader(f, criteriaSheet, len(headers), headerStyle); err != nil {
		return err
	}

	for i, rule := range criteria {
		row := []interface{}{i + 1, string(rule.RuleType()), string(rule.FilterType())}
		switch r := rule.(type) {
		case *models.PassedXPercentWithAtLeastYPercent:
			row = append(row, r.RequiredPercent, r.PassedAssignmentsPercent)
		case *models.RequiredPercentOfTotalPoints:
			row = append(row, r.RequiredPercent)
		}

		if err := writeRow(f, criteriaSheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to resolve Excel cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write Excel cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns, style int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("failed to resolve Excel cell: %w", err)
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func yesNo(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}
