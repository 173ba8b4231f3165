package server

import "github.com/labstack/echo/v4"

// Registrar is a common interface for all HTTP service registrars.
// public carries an optional session (anonymous allowed); protected
// rejects requests without one.
type Registrar interface {
	Register(public *echo.Group, protected *echo.Group)
}
