package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sharath018/food-donation-backend/internal/request"
)

const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// Exporter renders a list of requests into a downloadable report.
type Exporter interface {
	Export(format string, requests []*request.Request) ([]byte, string, string, error)
	RequestSummaryPDF(r *request.Request) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// Export returns file content, filename and content type for the given format.
func (e *exporter) Export(format string, requests []*request.Request) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(requests)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("requests_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatCSV:
		data, err := e.exportCSV(requests)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("requests_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil
	case FormatPDF:
		data, err := e.exportPDF(requests)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("requests_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil
	default:
		return nil, "", "", fmt.Errorf("unsupported report format: %s", format)
	}
}

var reportHeaders = []string{"ID", "Title", "Type", "People", "Food Types", "Delivery", "Visibility", "Deadline", "Status", "Donations", "Created At"}

func reportRow(r *request.Request) []string {
	return []string{
		r.ID,
		r.Title,
		string(r.RequestType),
		strconv.Itoa(r.NumberOfPeople),
		strings.Join(r.PreferredFoodTypes, ", "),
		strconv.FormatBool(r.DeliveryNeeded),
		string(r.Visibility),
		r.RequestByDateTime.Format("2006-01-02 15:04:05"),
		string(r.Status),
		strconv.Itoa(len(r.Donations)),
		r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (e *exporter) exportCSV(requests []*request.Request) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeaders); err != nil {
		return nil, err
	}
	for _, r := range requests {
		if err := w.Write(reportRow(r)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(requests []*request.Request) ([]byte, error) {
	sheet := "Requests"
	f := excelize.NewFile()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range requests {
		for colIdx, value := range reportRow(r) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportPDF(requests []*request.Request) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Food Requests Report")
	pdf.Ln(10)

	headers := []string{"Title", "Type", "People", "Visibility", "Deadline", "Status", "Donations"}
	widths := []float64{70, 25, 20, 25, 45, 30, 25}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range requests {
		pdf.CellFormat(widths[0], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, string(r.RequestType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, strconv.Itoa(r.NumberOfPeople), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, string(r.Visibility), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.RequestByDateTime.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, string(r.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.Itoa(len(r.Donations)), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RequestSummaryPDF renders a single request the way its detail card reads,
// donation previews included.
func (e *exporter) RequestSummaryPDF(r *request.Request) ([]byte, string, string, error) {
	vm := request.Present(r)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, vm.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Urgency", vm.UrgencyTag)
	line("Delivery", vm.DeliveryTag)
	line("Visibility", vm.VisibilityTag)
	line("People", vm.PeopleLabel)
	line("Food types", strings.Join(r.PreferredFoodTypes, ", "))
	line("Deadline", vm.Deadline)
	line("Notes", vm.Notes)
	line("Status", string(r.Status))

	if len(vm.Donations) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Donations", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, d := range vm.Donations {
			pdf.CellFormat(0, 6, fmt.Sprintf("- %s x%d from %s", d.ProductName, d.Quantity, d.RestaurantName), "", 1, "L", false, 0, "")
		}
		if vm.OverflowMarker != "" {
			pdf.CellFormat(0, 6, vm.OverflowMarker+" more", "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}
	filename := fmt.Sprintf("request_summary_%s.pdf", r.ID)
	return buf.Bytes(), filename, "application/pdf", nil
}
