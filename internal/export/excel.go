// Package export produces the front-desk reservations report as an
// Excel workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"frontdesk/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Reservations"

var columns = []string{
	"ID", "Reference", "Guest", "Room Type", "Room", "Check-in",
	"Check-out", "Status", "Payment", "Balance", "Notes", "Created",
}

type Exporter struct {
	path   string
	logger *zerolog.Logger
}

func New(path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

// Workbook builds an in-memory workbook with one row per reservation.
func (e *Exporter) Workbook(reservations []models.Reservation) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for col, title := range columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, title)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, r := range reservations {
		values := []interface{}{
			r.ID, r.Reference, r.GuestName, r.RoomType, r.RoomNumber,
			r.CheckIn, r.CheckOut, r.Status, r.PaymentStatus,
			balanceValue(r), r.Notes, r.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 6)
	_ = f.SetColWidth(sheetName, "B", "C", 20)
	_ = f.SetColWidth(sheetName, "D", "L", 14)

	_ = f.DeleteSheet("Sheet1")
	return f, nil
}

// Save writes the workbook to the exports directory with a
// date-stamped file name and returns the path.
func (e *Exporter) Save(reservations []models.Reservation, at time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f, err := e.Workbook(reservations)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fileName := fmt.Sprintf("reservations_%s.xlsx", at.Format("2006-01-02_150405"))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	if e.logger != nil {
		e.logger.Info().Str("file_path", filePath).Int("rows", len(reservations)).Msg("reservations exported")
	}
	return filePath, nil
}

func balanceValue(r models.Reservation) interface{} {
	if r.Balance == nil {
		return ""
	}
	return *r.Balance
}
