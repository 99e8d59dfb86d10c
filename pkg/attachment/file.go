package attachment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the per-file staging cap (10MB).
const MaxFileSize int64 = 10 * 1024 * 1024

var (
	// ErrTooLarge marks a file rejected for exceeding the size cap.
	ErrTooLarge = errors.New("attachment: file too large")
	// ErrNotImage marks a file rejected because it is not an image.
	ErrNotImage = errors.New("attachment: file is not an image")
)

// TooLargeError carries the rejected file's size and the cap it exceeded.
type TooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("attachment: %s is %d bytes, limit is %d", e.Name, e.Size, e.Limit)
}

// Is lets errors.Is(err, ErrTooLarge) match.
func (e *TooLargeError) Is(target error) bool {
	return target == ErrTooLarge
}

// File is a user-selected file. Open is called lazily, only when the binary
// is actually sent.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromBytes wraps in-memory content.
func FromBytes(name string, data []byte) File {
	return File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: detectContentType(name, data),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromPath stats a file on disk. The content is read only when opened.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("attachment: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("attachment: %s is a directory", path)
	}

	head, err := sniff(path)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: detectContentType(path, head),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// IsImage reports whether the content type is an image/* type.
func (f File) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

func sniff(path string) ([]byte, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: open %s: %w", path, err)
	}
	defer fh.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(fh, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("attachment: read %s: %w", path, err)
	}
	return buf[:n], nil
}

func detectContentType(name string, head []byte) string {
	if len(head) > 0 {
		if detected := http.DetectContentType(head); detected != "application/octet-stream" {
			return detected
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
