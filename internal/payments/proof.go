package payments

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
)

const defaultExtension = "png"

// ProofFile is a selected payment screenshot.
type ProofFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (f *ProofFile) Size() int64 {
	return int64(len(f.Data))
}

// DetectContentType trusts the declared type unless it is empty or generic,
// then sniffs data.
func DetectContentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

func validateFile(f *ProofFile, maxBytes int64) error {
	if f == nil || len(f.Data) == 0 {
		return fmt.Errorf("%w: no file selected", ErrInvalidFile)
	}

	ct := DetectContentType(f.ContentType, f.Data)
	if !isImage(ct) {
		return fmt.Errorf("%w: content type %q is not an image", ErrInvalidFile, ct)
	}

	// the declared type is client input; content recognized as something
	// else (markup, scripts, documents) is rejected whatever the label says
	if sniffed := http.DetectContentType(f.Data); !isImage(sniffed) && sniffed != "application/octet-stream" {
		return fmt.Errorf("%w: content is %q, not an image", ErrInvalidFile, sniffed)
	}

	if f.Size() > maxBytes {
		return fmt.Errorf("%w: %s exceeds the %s limit",
			ErrInvalidFile,
			units.BytesSize(float64(f.Size())),
			units.BytesSize(float64(maxBytes)))
	}
	return nil
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// extension returns the lowercase extension of filename without the dot,
// or png when there is none usable.
func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(filename)), "."))
	if ext == "" || len(ext) > 8 {
		return defaultExtension
	}
	for _, r := range ext {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') {
			return defaultExtension
		}
	}
	return ext
}
