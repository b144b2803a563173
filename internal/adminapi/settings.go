package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"instashop/internal/webserver"
)

type siteNamePayload struct {
	SiteName string `json:"siteName"`
}

func registerSettingRoutes() {
	webserver.ApiGET("/sitename", getSiteName)
	webserver.ApiPUT("/sitename", setSiteName)
}

func getSiteName(c echo.Context) error {
	name, err := app.Catalog().SiteName()
	if err != nil {
		return failFor(c, err)
	}
	return ok(c, map[string]string{"siteName": name})
}

func setSiteName(c echo.Context) error {
	var payload siteNamePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse site name", err.Error())
	}
	if err := app.Catalog().SetSiteName(payload.SiteName); err != nil {
		return failFor(c, err)
	}
	return ok(c, map[string]string{"siteName": payload.SiteName})
}
