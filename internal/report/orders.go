// Package report renders operator exports.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/polkiloo/storebot/internal/domain/model"
)

// OrdersSheet is the worksheet name of the orders export.
const OrdersSheet = "Orders"

const timeLayout = "2006-01-02 15:04"

func orderHeaders() []string {
	return []string{
		"Order ID",
		"Created",
		"User ID",
		"Username",
		"Name",
		"Product",
		"Variant",
		"Total",
		"Status",
		"Proof",
		"Notes",
	}
}

func orderRowValues(o model.OrderView) []interface{} {
	return []interface{}{
		o.ID,
		o.CreatedAt.Format(timeLayout),
		o.UserID,
		o.Username,
		o.FullName,
		o.ProductName,
		deref(o.VariantName),
		o.TotalPrice,
		string(o.Status),
		deref(o.PaymentProofURL),
		deref(o.AdminNotes),
	}
}

// OrdersXLSX builds a workbook with one row per order and a total of the
// income-bearing orders under the last row.
func OrdersXLSX(orders []model.OrderView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), OrdersSheet); err != nil {
		return nil, err
	}

	headers := orderHeaders()
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(OrdersSheet, cell, h); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(OrdersSheet, "A1", last, bold); err != nil {
		return nil, err
	}

	var income int64
	for i, o := range orders {
		values := orderRowValues(o)
		rowIdx := i + 2
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(OrdersSheet, cell, v); err != nil {
				return nil, err
			}
		}
		if o.Status == model.OrderStatusCompleted || o.Status == model.OrderStatusVerification {
			income += o.TotalPrice
		}
	}

	totalRow := len(orders) + 3
	if err := f.SetCellValue(OrdersSheet, fmt.Sprintf("G%d", totalRow), "Income"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(OrdersSheet, fmt.Sprintf("H%d", totalRow), income); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(OrdersSheet, "D", "F", 20); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
