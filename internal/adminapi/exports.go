package adminapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"instashop/internal/report"
	"instashop/internal/webserver"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerExportRoutes() {
	webserver.ApiGET("/export/orders.xlsx", exportOrders)
	webserver.ApiGET("/export/orders.csv", exportOrdersCSV)
	webserver.ApiGET("/export/products/:id/orders.xlsx", exportProductOrders)
	webserver.ApiGET("/export/user-stats.xlsx", exportUserStats)
}

func sendFile(c echo.Context, filename, contentType string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, contentType, body)
}

func exportOrders(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	var buf bytes.Buffer
	if err := app.Exporter().Orders(&buf, rep); err != nil {
		return failFor(c, err)
	}
	return sendFile(c, "siparisler.xlsx", xlsxContentType, buf.Bytes())
}

func exportOrdersCSV(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	var buf bytes.Buffer
	if err := app.Exporter().OrdersCSV(&buf, rep); err != nil {
		return failFor(c, err)
	}
	return sendFile(c, "siparisler.csv", "text/csv", buf.Bytes())
}

func exportProductOrders(c echo.Context) error {
	id := c.Param("id")
	p, err := app.Catalog().Get(id)
	if err != nil {
		return failFor(c, err)
	}
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	var buf bytes.Buffer
	if err := app.Exporter().ProductOrders(&buf, rep, id); err != nil {
		return failFor(c, err)
	}
	// file named after the product, as the admin panel always did
	name := strings.ReplaceAll(p.Name, " ", "-")
	return sendFile(c, fmt.Sprintf("%s-siparisleri.xlsx", name), xlsxContentType, buf.Bytes())
}

func exportUserStats(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	var buf bytes.Buffer
	if err := app.Exporter().UserStats(&buf, rep); err != nil {
		return failFor(c, err)
	}
	return sendFile(c, "musteri-bazli-rapor.xlsx", xlsxContentType, buf.Bytes())
}
