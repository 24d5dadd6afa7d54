// Package fsutil provides the file system helpers ctxport relies on: reading
// file content as text, and writing output and config files safely.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Encoding names the decoding applied to file content.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingLatin1      Encoding = "latin-1"
	EncodingWindows1252 Encoding = "windows-1252"
)

// ReadText reads the whole file as text. Valid UTF-8 is returned as is; anything
// else is decoded as a single-byte encoding, see DecodeText.
func ReadText(ctx context.Context, path string) (string, Encoding, error) {
	select {
	case <-ctx.Done():
		return "", "", fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	if err := checkRegular(path); err != nil {
		return "", "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", classify(path, err)
	}

	text, enc := DecodeText(content)
	return text, enc, nil
}

// DecodeText converts raw bytes to a string. Valid UTF-8 is kept. Otherwise
// content with bytes in 0x80-0x9F is decoded as Windows-1252 and the rest as
// ISO-8859-1; the two agree everywhere else.
func DecodeText(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}

	enc, name := charmap.ISO8859_1, EncodingLatin1
	if hasC1Byte(data) {
		enc, name = charmap.Windows1252, EncodingWindows1252
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// Both charmaps map every byte; keep the raw bytes if the decoder ever disagrees.
		return string(data), name
	}
	return string(decoded), name
}

func hasC1Byte(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 && b <= 0x9f {
			return true
		}
	}
	return false
}

// ReadPrefix reads at most n bytes from the start of path.
func ReadPrefix(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	switch {
	case err == nil, errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return buf[:read], nil
	default:
		return nil, classify(path, err)
	}
}

func checkRegular(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return classify(path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
