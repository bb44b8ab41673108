package postgres

import (
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/observability"
)

// observe records call count and duration for a repository method.
// Meant to be deferred with a pointer to the named error return.
func observe(method string, start time.Time, err *error) {
	status := "ok"
	if err != nil && *err != nil {
		status = "error"
	}
	observability.RepositoryCalls.WithLabelValues(method, status).Inc()
	observability.RepositoryDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
