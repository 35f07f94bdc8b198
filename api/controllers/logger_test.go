package controllers

import (
	"io"

	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}
