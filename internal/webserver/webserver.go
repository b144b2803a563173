// Package webserver hosts the echo instance the admin API registers its
// routes on. Handlers live in internal/adminapi; this package only owns the
// server lifecycle and the /api route group.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"instashop/config"
)

type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	cfg  *config.AppConfig
}

var server *WebServer

// Init builds the global server instance.
func Init(cfg *config.AppConfig) *WebServer {
	root := echo.New()
	root.HideBanner = true
	root.HidePort = true
	root.Use(middleware.Recover())
	root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	server = &WebServer{root: root, api: root.Group("/api"), cfg: cfg}
	return server
}

// Listen blocks serving the API until the listener fails or is shut down.
func Listen() error {
	addr := fmt.Sprintf("%s:%d", server.cfg.Web.Host, server.cfg.Web.Port)
	zap.L().Info("admin api listening", zap.String("addr", addr))
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

func ApiGET(path string, h echo.HandlerFunc) { server.api.GET(path, h) }

func ApiPOST(path string, h echo.HandlerFunc) { server.api.POST(path, h) }

func ApiPUT(path string, h echo.HandlerFunc) { server.api.PUT(path, h) }

func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }
