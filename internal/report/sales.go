package report

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/BruksfildServices01/skin-clinic/internal/domain/catalog"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

const (
	SalesSheet = "Sales"
	ItemsSheet = "Items"
)

var salesHeaders = []string{"Order", "Date", "Client", "Payment Method", "Payment Status", "Items", "Total"}
var itemHeaders = []string{"Order", "Type", "Item", "Quantity", "Unit Price", "Subtotal"}

// WriteSales renders orders (with Client and Items preloaded) as an xlsx
// workbook with one row per order and one row per line item.
func WriteSales(w io.Writer, orders []models.Order) error {
	file := excelize.NewFile()
	file.NewSheet(SalesSheet)
	file.NewSheet(ItemsSheet)
	file.DeleteSheet("Sheet1")

	writeHeader(file, SalesSheet, salesHeaders)
	writeHeader(file, ItemsSheet, itemHeaders)

	var grand float64
	itemRow := 2
	for i, o := range orders {
		row := i + 2
		client := "Walk-in"
		if o.Client != nil {
			client = o.Client.FullName()
		}

		file.SetCellValue(SalesSheet, cell("A", row), o.ID)
		file.SetCellValue(SalesSheet, cell("B", row), o.CreatedAt.Format("2006-01-02 15:04"))
		file.SetCellValue(SalesSheet, cell("C", row), client)
		file.SetCellValue(SalesSheet, cell("D", row), o.PaymentMethod)
		file.SetCellValue(SalesSheet, cell("E", row), o.PaymentStatus)
		file.SetCellValue(SalesSheet, cell("F", row), len(o.Items))
		file.SetCellValue(SalesSheet, cell("G", row), o.TotalPrice)
		grand += o.TotalPrice

		for _, it := range o.Items {
			kind := "service"
			if it.ProductID != nil {
				kind = "product"
			}
			file.SetCellValue(ItemsSheet, cell("A", itemRow), o.ID)
			file.SetCellValue(ItemsSheet, cell("B", itemRow), kind)
			file.SetCellValue(ItemsSheet, cell("C", itemRow), it.Name())
			file.SetCellValue(ItemsSheet, cell("D", itemRow), it.Quantity)
			file.SetCellValue(ItemsSheet, cell("E", itemRow), it.UnitPrice)
			file.SetCellValue(ItemsSheet, cell("F", itemRow), it.Subtotal)
			itemRow++
		}
	}

	totalRow := len(orders) + 2
	file.SetCellValue(SalesSheet, cell("F", totalRow), "Total")
	file.SetCellValue(SalesSheet, cell("G", totalRow), catalog.Round2(grand))

	file.SetActiveSheet(file.GetSheetIndex(SalesSheet))
	return file.Write(w)
}

func writeHeader(file *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		file.SetCellValue(sheet, cell(string(rune('A'+i)), 1), h)
	}
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
