package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"artisanhub/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// Reference is a stored blob with its direct URL.
type Reference = domain.MediaReference

// File is a local file selected for upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func (f File) IsImage() bool { return strings.HasPrefix(f.ContentType, "image/") }
func (f File) IsVideo() bool { return strings.HasPrefix(f.ContentType, "video/") }

// FromPath describes the file at path, sniffing its content type.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("detect %s: %w", path, err)
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: baseType(mt.String()),
		Size:        info.Size(),
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// FromBytes wraps in-memory content. An empty contentType is sniffed.
func FromBytes(name, contentType string, b []byte) File {
	if contentType == "" {
		contentType = baseType(mimetype.Detect(b).String())
	}
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(b)),
		Open:        func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(b)), nil },
	}
}

// baseType strips parameters such as "; charset=utf-8".
func baseType(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// FilterImages keeps image files in their original order.
func FilterImages(files []File) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f.IsImage() {
			out = append(out, f)
		}
	}
	return out
}

// SplitMedia returns the images and the first video. Other files are ignored.
func SplitMedia(files []File) (images []File, video *File) {
	images = FilterImages(files)
	for i := range files {
		if files[i].IsVideo() {
			v := files[i]
			return images, &v
		}
	}
	return images, nil
}

// StripExt returns name without its final extension.
func StripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
