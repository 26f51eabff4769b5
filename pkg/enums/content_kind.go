package enums

import "fmt"

// ContentKind names the two kinds of file-backed catalog entries.
type ContentKind string

const (
	ContentKindProduct ContentKind = "product"
	ContentKindGallery ContentKind = "gallery"
)

var validContentKinds = []ContentKind{
	ContentKindProduct,
	ContentKindGallery,
}

// String returns the literal string for the kind.
func (k ContentKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is known.
func (k ContentKind) IsValid() bool {
	for _, candidate := range validContentKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// Label is the human wording used in admin notices.
func (k ContentKind) Label() string {
	switch k {
	case ContentKindProduct:
		return "Product"
	case ContentKindGallery:
		return "Gallery image"
	}
	return "Item"
}

// ParseContentKind converts raw input into a ContentKind.
func ParseContentKind(value string) (ContentKind, error) {
	for _, candidate := range validContentKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid content kind %q", value)
}
