package report

import (
	"fmt"
	"io"

	"github.com/fjod/storefront/internal/domain"
	"github.com/tealeg/xlsx"
)

// WriteXLSX renders r as a workbook with one sheet per view.
func WriteXLSX(w io.Writer, r Report) error {
	file := xlsx.NewFile()

	months, err := file.AddSheet("Months")
	if err != nil {
		return fmt.Errorf("add months sheet: %w", err)
	}
	addRow(months, "Month", "Orders", "Revenue")
	for _, m := range r.Months {
		row := months.AddRow()
		row.AddCell().SetString(m.Month)
		row.AddCell().SetInt(m.Orders)
		row.AddCell().SetString(m.Revenue.StringFixed(2))
	}
	total := months.AddRow()
	total.AddCell().SetString("Total")
	total.AddCell().SetInt(r.TotalOrders)
	total.AddCell().SetString(r.TotalRevenue.StringFixed(2))

	statuses, err := file.AddSheet("Statuses")
	if err != nil {
		return fmt.Errorf("add statuses sheet: %w", err)
	}
	addRow(statuses, "Status", "Orders")
	for _, s := range domain.OrderStatuses {
		row := statuses.AddRow()
		row.AddCell().SetString(s.String())
		row.AddCell().SetInt(r.StatusCounts[s])
	}

	top, err := file.AddSheet("Top products")
	if err != nil {
		return fmt.Errorf("add top products sheet: %w", err)
	}
	addRow(top, "Product", "Quantity")
	for _, p := range r.TopProducts {
		row := top.AddRow()
		row.AddCell().SetString(p.Name)
		row.AddCell().SetInt(p.Quantity)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
