// Package seed loads the sample Alpha Holdings dataset through the registry
// services, so every row passes the same validation as an API write. Re-runs
// are idempotent: conflict rejections are logged and skipped.
package seed

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/alphaholdings/entity-registry/modules/registry/services"
)

// alreadySeeded reports whether err is a conflict rejection, which on a
// re-run means the row exists from a previous seed.
func alreadySeeded(err error) bool {
	var svcErr *services.ServiceError
	return errors.As(err, &svcErr) && svcErr.Status == http.StatusConflict
}

func seedDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
