package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
)

// multipartMemory is how much of a form is held in memory before spilling
// file parts to disk.
const multipartMemory = 8 << 20

// ParseMultipartForm reads an admin upload form of at most maxBytes.
func ParseMultipartForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > maxBytes {
			return pkgerrors.Wrap(pkgerrors.CodeInvalidFile, err, "File is too large")
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return pkgerrors.Wrap(pkgerrors.CodeInvalidFile, err, "No file part")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return nil
}

// FormFile is one uploaded part. Close releases any temp file behind it.
type FormFile struct {
	Filename string
	Body     io.Reader
	file     multipart.File
}

func (f *FormFile) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	return f.file.Close()
}

// FormFileField returns the part named field. A missing part is reported as
// nil without error so the caller decides how to word the rejection.
func FormFileField(r *http.Request, field string) (*FormFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidFile, err, "unreadable file part")
	}
	return &FormFile{Filename: header.Filename, Body: file, file: file}, nil
}

// FormValue returns the trimmed, NFC-normalized form value key. Length
// limits belong to the service that knows the column widths.
func FormValue(r *http.Request, key string) string {
	return SanitizeString(r.FormValue(key), 0)
}
