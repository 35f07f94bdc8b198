package orders

import (
	"io"

	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}
