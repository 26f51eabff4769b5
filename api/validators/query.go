package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
)

// ParseIDParam reads a positive numeric route parameter. Anything else can
// never name a row, so it is reported as not found.
func ParseIDParam(r *http.Request, key, label string) (uint64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, label+" ID "+raw+" not found").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// QueryString returns the trimmed query parameter key, cut to maxLen.
func QueryString(r *http.Request, key string, maxLen int) string {
	return SanitizeString(r.URL.Query().Get(key), maxLen)
}
