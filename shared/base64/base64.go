package base64

import (
	"encoding/base64"
	"strings"
)

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URI prefix, if any, and decodes the payload.
func Decode(file string) ([]byte, error) {
	if idx := strings.Index(file, ";base64,"); idx != -1 {
		file = file[idx+len(";base64,"):]
	}

	return base64.StdEncoding.DecodeString(file) //nolint:wrapcheck
}
