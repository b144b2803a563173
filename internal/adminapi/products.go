package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"instashop/internal/domain"
	"instashop/internal/webserver"
)

type productPayload struct {
	Name  string        `json:"name"`
	Image string        `json:"image"`
	Price float64       `json:"price"`
	Sizes []domain.Size `json:"sizes"`
}

func (p productPayload) toDraft() domain.Product {
	return domain.Product{
		Name:  strings.TrimSpace(p.Name),
		Image: strings.TrimSpace(p.Image),
		Price: p.Price,
		Sizes: p.Sizes,
	}
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	products, err := app.Catalog().List()
	if err != nil {
		return failFor(c, err)
	}
	page, pageSize := parsePagination(c)
	total := len(products)
	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	return paged(c, products[lo:hi], total, page, pageSize)
}

func getProduct(c echo.Context) error {
	p, err := app.Catalog().Get(c.Param("id"))
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := app.Catalog().Create(payload.toDraft())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := app.Catalog().Update(c.Param("id"), payload.toDraft())
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := app.Catalog().Delete(id); err != nil {
		return failFor(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
