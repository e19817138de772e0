package crud

import (
	"github.com/rs/zerolog/log"

	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/metrics"
)

// Track records the outcome of a use case: always a metric, a log line on failure.
// Client errors log at warn level, the rest at error level.
func Track(resource, operation string, err error) {
	metrics.RecordOperation(resource, operation, err)
	if err == nil {
		return
	}

	event := log.Warn()
	switch apperror.KindOf(err) {
	case apperror.KindUnknown, apperror.KindInfrastructure:
		event = log.Error()
	}
	event.Err(err).
		Str("resource", resource).
		Str("operation", operation).
		Msg("operation failed")
}
