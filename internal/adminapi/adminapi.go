// Package adminapi is the HTTP surface of the storefront: catalog CRUD for
// the admin panel, order placement for the product page, reports and
// exports for the order screen.
package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"instashop/internal/catalog"
	"instashop/internal/domain"
	"instashop/internal/export"
	"instashop/internal/ordering"
	"instashop/internal/store"
)

// AppContext is what the handlers need from the application. Handlers
// depend on this interface, never on the concrete app, so tests can supply
// a fixture backed by the in-memory store.
type AppContext interface {
	Store() store.Store
	Catalog() *catalog.Manager
	Recorder() *ordering.Recorder
	Exporter() *export.Exporter
	ReloadDelaySeconds() int
}

var app AppContext

// Init wires the handlers to the application and registers all routes.
func Init(a AppContext) {
	app = a
	registerProductRoutes()
	registerOrderRoutes()
	registerReportRoutes()
	registerExportRoutes()
	registerSettingRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, items interface{}, total int, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":     0,
		"data":     items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("perPage"))
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// failFor maps domain errors onto the response envelope.
func failFor(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrDuplicateSize),
		errors.Is(err, domain.ErrInvalidOrderInput),
		errors.Is(err, domain.ErrInvalidSiteName):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, domain.ErrImageTooLarge):
		return fail(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", err.Error(), nil)
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSizeNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrOutOfStock):
		return fail(c, http.StatusConflict, "OUT_OF_STOCK", err.Error(), nil)
	case errors.Is(err, domain.ErrNoOrders):
		return fail(c, http.StatusNotFound, "NO_ORDERS", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Operation failed", err.Error())
	}
}
