// Package httpapi exposes the workspace over HTTP. All tenant-scoped routes
// resolve the active team through the tenancy resolver before touching any
// team data; the sticky cookie is only ever a hint, never trusted.
package httpapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Server wraps the Echo instance with lifecycle management.
type Server struct {
	echo *echo.Echo
	log  *logrus.Logger
}

// NewServer builds the HTTP server with all routes registered.
func NewServer(s Services, log *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(log))

	Register(e, s, log)

	return &Server{echo: e, log: log}
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("http server listening")
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    c.Request().URL.Path,
				"status":  c.Response().Status,
				"elapsed": time.Since(start).String(),
			}).Info("request")
			return err
		}
	}
}
