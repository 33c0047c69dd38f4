package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/glyphd/internal/mapping"
)

var errInvalidAuthType = errors.New("invalid authentication type")

// mappingError converts store errors into HTTP errors.
func mappingError(err error) error {
	var mErr *mapping.Error
	if !errors.As(err, &mErr) {
		return huma.Error500InternalServerError("Mapping operation failed", err)
	}

	switch mErr.Code {
	case mapping.ErrCodeZoneNotFound:
		return huma.Error404NotFound(mErr.Message)
	case mapping.ErrCodeInvalidZone, mapping.ErrCodeDuplicateContact:
		return huma.Error400BadRequest(mErr.Message, err)
	default:
		return huma.Error500InternalServerError(mErr.Message, err)
	}
}
