package export

import (
	"bytes"
	"testing"
	"time"

	"bookery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookings(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	bookings := []*models.Booking{
		{
			ID: 1, UserID: 2, ServiceID: 3,
			BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			StartTime:   time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC),
			Status:      models.StatusConfirmed,
			TotalPrice:  80,
			Notes:       "first visit",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, bookings, start, end))
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	period, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Contains(t, period, "2026-09-01")

	header, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	id, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	status, err := f.GetCellValue(sheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, status)
}

func TestWriteBookings_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, nil, time.Now().Add(-time.Hour), time.Now()))
	assert.NotZero(t, buf.Len())
}
