package utils

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// GetFileHash returns the hex sha256 of the file at path.
func GetFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("GetFileHash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("GetFileHash: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
