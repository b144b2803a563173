package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"instashop/internal/report"
	"instashop/internal/webserver"
)

type orderPayload struct {
	ProductID         string `json:"productId"`
	Size              string `json:"size"`
	InstagramUsername string `json:"instagramUsername"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/orders", placeOrder)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/grouped", listOrdersGrouped)
}

func placeOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	o, err := app.Recorder().PlaceOrder(payload.ProductID, payload.Size, payload.InstagramUsername)
	if err != nil {
		return failFor(c, err)
	}
	// reloadDelay is the cosmetic pause the product page waits before
	// refreshing; purely presentational.
	return ok(c, map[string]interface{}{
		"order":       o,
		"reloadDelay": app.ReloadDelaySeconds(),
	})
}

func sortParams(c echo.Context) (field, direction string) {
	field = strings.TrimSpace(c.QueryParam("sort"))
	if field == "" {
		field = report.FieldOrderDate
	}
	direction = strings.ToLower(strings.TrimSpace(c.QueryParam("order")))
	if direction != "asc" {
		direction = "desc"
	}
	return field, direction
}

func listOrders(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	field, direction := sortParams(c)
	if productID := c.QueryParam("productId"); productID != "" {
		return ok(c, rep.OrdersForProduct(productID))
	}
	orders, err := rep.SortedOrders(field, direction)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SORT", err.Error(), nil)
	}
	return ok(c, orders)
}

func listOrdersGrouped(c echo.Context) error {
	rep, err := report.Snapshot(app.Store())
	if err != nil {
		return failFor(c, err)
	}
	field, direction := sortParams(c)
	groups, err := rep.GroupOrdersByUser(field, direction)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SORT", err.Error(), nil)
	}
	return ok(c, groups)
}
