package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

func TestExportCourseAdmission(t *testing.T) {
	f := newFixture(t, AdmissionStatusOptions{Workers: 4})

	f.cache.On("GetCourseStatus", mock.Anything, courseID).Return(nil, cache.ErrCacheMiss)
	f.expectCourseRules(t, defaultRules())
	f.expectCourseData()
	f.cache.On("SetCourseStatus", mock.Anything, courseID, mock.Anything).Return(nil)

	export := NewAdmissionExportService(f.service, nil)
	data, err := export.ExportCourseAdmission(context.Background(), courseID)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{admissionSheet, criteriaSheet}, wb.GetSheetList())

	rows, err := wb.GetRows(admissionSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"User ID", "Username", "Admitted",
		"Rule 1 HOMEWORK Achieved", "Rule 1 HOMEWORK Percent", "Rule 1 HOMEWORK Passed",
		"Rule 2 HOMEWORK Achieved", "Rule 2 HOMEWORK Percent", "Rule 2 HOMEWORK Passed",
		"Warnings",
	}, rows[0])
	assert.Equal(t, []string{"alice", "Alice", "Yes"}, rows[1][:3])
	assert.Equal(t, "65", rows[1][7])
	assert.Equal(t, "1", rows[1][9])
	assert.Equal(t, []string{"bob", "Bob", "No"}, rows[2][:3])

	criteria, err := wb.GetRows(criteriaSheet)
	require.NoError(t, err)
	require.Len(t, criteria, 3)
	assert.Equal(t, []string{"1", "PASSED_X_PERCENT_WITH_AT_LEAST_Y_PERCENT", "HOMEWORK", "50", "50"}, criteria[1])
	assert.Equal(t, []string{"2", "REQUIRED_PERCENT_OF_TOTAL_POINTS", "HOMEWORK", "50"}, criteria[2])
}

func TestExportCourseAdmission_CriteriaNotFound(t *testing.T) {
	f := newFixture(t, AdmissionStatusOptions{})

	f.repo.courses.On("GetByID", mock.Anything, mock.Anything, courseID).Return(nil, repositories.ErrNotFound)

	export := NewAdmissionExportService(f.service, nil)
	_, err := export.ExportCourseAdmission(context.Background(), courseID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
