package util

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the real MIME type of an upload.
// allowedTypes are prefixes or full types, e.g. "image/", "application/pdf".
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, fmt.Errorf("%w: %s", ErrInvalidFileType, mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
