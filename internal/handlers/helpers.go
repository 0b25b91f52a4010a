package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/utils"
)

// parseIDParam reads the {id} URL parameter as an int64. A missing or
// malformed value is reported as a bad request.
func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, constants.ParamID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.NewBadRequestError("Invalid resource identifier")
	}
	return id, nil
}
