package service

import (
	"github.com/pkg/errors"

	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
)

// dbErr passes API errors through and turns anything else into a database error.
func dbErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *vaerr.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return vaerr.Database(err)
}
