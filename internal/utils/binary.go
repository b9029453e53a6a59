package utils

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// sniffLength defines the maximum number of bytes inspected when deciding
// whether message input is binary.
const sniffLength = 8000

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// IsFileBinary reads up to sniffLength bytes from the file at path and reports
// whether the content appears to be binary. Read failures are returned so the
// caller can reject the input instead of silently treating it as text.
func IsFileBinary(path string) (bool, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return false, fmt.Errorf("open %s: %w", path, openError)
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return false, fmt.Errorf("read %s: %w", path, readError)
	}
	return IsBinary(buffer[:bytesRead]), nil
}
