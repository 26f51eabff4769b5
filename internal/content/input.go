package content

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultCategory is stored when a gallery image is added without one.
const DefaultCategory = "all"

// Column widths of products.name, gallery.title and gallery.category.
const (
	MaxNameLen     = 100
	MaxCategoryLen = 50
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
}

// numeric(10,2) tops out just below this.
var maxPrice = decimal.New(1, 8)

// Metadata is the form data of an admin create. Product reads Name,
// Description and Price; GalleryImage reads Title and Category.
type Metadata struct {
	Name        string
	Description string
	Price       string
	Title       string
	Category    string
}

// Upload is the binary payload of an admin create.
type Upload struct {
	Filename string
	Body     io.Reader
}

// AllowedFile reports whether filename carries an accepted image extension.
func AllowedFile(filename string) bool {
	_, ok := allowedExtensions[blobstore.Extension(filename)]
	return ok
}

func checkUpload(file *Upload) error {
	if file == nil || file.Body == nil || strings.TrimSpace(file.Filename) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidFile, "No selected file")
	}
	if !AllowedFile(file.Filename) {
		return pkgerrors.New(pkgerrors.CodeInvalidFile, "File type not allowed")
	}
	return nil
}

// parsePrice treats a blank or unparseable price as omitted (0.00) and
// rejects negative or out-of-range values.
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "Price must not be negative")
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "Price is too large")
	}
	return price, nil
}

func required(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
	}
	return value, checkLength(field, value, maxLen)
}

// checkLength rejects values longer than maxLen characters. Zero means no
// limit.
func checkLength(field, value string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", field, maxLen))
	}
	return nil
}
