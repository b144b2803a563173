package adminapi

import (
	"github.com/labstack/echo/v4"

	"instashop/internal/report"
	"instashop/internal/webserver"
)

func registerReportRoutes() {
	webserver.ApiGET("/stats", getStatistics)
	webserver.ApiGET("/stats/users", getUserStatistics)
	webserver.ApiGET("/stats/products/:id", getProductStatistics)
}

func getStatistics(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, rep.GlobalStatistics())
}

func getUserStatistics(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, rep.PerUserSummary())
}

func getProductStatistics(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	id := c.Param("id")
	return ok(c, map[string]interface{}{
		"productId":  id,
		"orderCount": rep.OrderCountForProduct(id),
	})
}
