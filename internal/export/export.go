// Package export serializes report output into spreadsheet artifacts. The
// column set, order and Turkish headers match the files the storefront has
// always produced, so downstream consumers keep working.
package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"instashop/internal/domain"
	"instashop/internal/report"
)

var orderHeaders = []string{
	"Instagram Kullanıcı Adı",
	"Ürün Adı",
	"Beden",
	"Fiyat",
	"Sipariş Tarihi",
}

var orderColWidths = []float64{25, 35, 15, 15, 20}

// Exporter renders xlsx and csv artifacts. Prices are formatted with
// Turkish digit grouping and the lira sign, as in the original exports.
type Exporter struct {
	printer *message.Printer
}

func New() *Exporter {
	return &Exporter{printer: message.NewPrinter(language.Turkish)}
}

func (e *Exporter) formatPrice(v float64) string {
	return e.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + " ₺"
}

// priceCell resolves an order's price for display; "N/A" when the product
// is gone and no price was captured at placement.
func (e *Exporter) priceCell(rep *report.Report, o domain.Order) string {
	if o.UnitPrice == nil {
		if _, ok := rep.Product(o.ProductID); !ok {
			return "N/A"
		}
	}
	return e.formatPrice(rep.ResolvePrice(o))
}

func cellAxis(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}

func (e *Exporter) writeOrderSheet(w io.Writer, sheet string, rep *report.Report, orders []domain.Order) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)
	for i, h := range orderHeaders {
		f.SetCellValue(sheet, cellAxis(i, 1), h)
		f.SetColWidth(sheet, excelize.ToAlphaString(i), excelize.ToAlphaString(i), orderColWidths[i])
	}
	for i, o := range orders {
		row := i + 2
		f.SetCellValue(sheet, cellAxis(0, row), o.InstagramUsername)
		f.SetCellValue(sheet, cellAxis(1, row), o.ProductName)
		f.SetCellValue(sheet, cellAxis(2, row), o.Size)
		f.SetCellValue(sheet, cellAxis(3, row), e.priceCell(rep, o))
		f.SetCellValue(sheet, cellAxis(4, row), o.OrderDate)
	}
	return errors.Wrap(f.Write(w), "write xlsx")
}

// Orders writes the full order book as the "Siparişler" sheet.
func (e *Exporter) Orders(w io.Writer, rep *report.Report) error {
	orders, err := rep.SortedOrders(report.FieldOrderDate, "desc")
	if err != nil {
		return err
	}
	return e.writeOrderSheet(w, "Siparişler", rep, orders)
}

// ProductOrders writes one product's orders. A product with no orders is an
// error the caller surfaces instead of producing an empty file.
func (e *Exporter) ProductOrders(w io.Writer, rep *report.Report, productID string) error {
	orders := rep.OrdersForProduct(productID)
	if len(orders) == 0 {
		return domain.ErrNoOrders
	}
	return e.writeOrderSheet(w, "Ürün Siparişleri", rep, orders)
}

// UserStats writes the per-customer totals sheet.
func (e *Exporter) UserStats(w io.Writer, rep *report.Report) error {
	const sheet = "Müşteri Bazlı Rapor"
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Instagram Kullanıcı Adı", "Toplam Sipariş Sayısı", "Toplam Harcama"}
	widths := []float64{30, 20, 20}
	for i, h := range headers {
		f.SetCellValue(sheet, cellAxis(i, 1), h)
		f.SetColWidth(sheet, excelize.ToAlphaString(i), excelize.ToAlphaString(i), widths[i])
	}
	for i, s := range rep.PerUserSummary() {
		row := i + 2
		f.SetCellValue(sheet, cellAxis(0, row), s.InstagramUsername)
		f.SetCellValue(sheet, cellAxis(1, row), s.OrderCount)
		f.SetCellValue(sheet, cellAxis(2, row), e.formatPrice(s.TotalSpent))
	}
	return errors.Wrap(f.Write(w), "write xlsx")
}

type orderRow struct {
	InstagramUsername string `csv:"Instagram Kullanıcı Adı"`
	ProductName       string `csv:"Ürün Adı"`
	Size              string `csv:"Beden"`
	Price             string `csv:"Fiyat"`
	OrderDate         string `csv:"Sipariş Tarihi"`
}

// OrdersCSV writes the same rows as the Orders sheet for consumers that
// want a plain tabular file.
func (e *Exporter) OrdersCSV(w io.Writer, rep *report.Report) error {
	orders, err := rep.SortedOrders(report.FieldOrderDate, "desc")
	if err != nil {
		return err
	}
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			InstagramUsername: o.InstagramUsername,
			ProductName:       o.ProductName,
			Size:              o.Size,
			Price:             e.priceCell(rep, o),
			OrderDate:         o.OrderDate,
		})
	}
	return errors.Wrap(gocsv.Marshal(&rows, w), "write csv")
}
