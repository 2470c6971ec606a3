package export

import (
	"fmt"
	"io"
	"time"

	"bookery/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// WriteBookings renders bookings into an xlsx workbook and streams it to w.
func WriteBookings(w io.Writer, bookings []*models.Booking, start, end time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))

	headers := []string{"ID", "User", "Service", "Date", "Start", "End", "Status", "Total price", "Notes"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.UserID,
			b.ServiceID,
			b.BookingDate.Format("2006-01-02"),
			b.StartTime.Format("15:04"),
			b.EndTime.Format("15:04"),
			b.Status,
			b.TotalPrice,
			b.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "I", 14)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
