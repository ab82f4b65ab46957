// Package upload turns an image and a description into a new project
// record with the image embedded as a data URL.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/san-kum/memtree/internal/gallery"
)

// MaxImageBytes caps embedded images; the whole list is rewritten on every
// change, so large blobs make every save slow.
const MaxImageBytes = 8 << 20

var (
	ErrEmptyDescription = errors.New("upload: description is required")
	ErrEmptyImage       = errors.New("upload: image is empty")
	ErrNotImage         = errors.New("upload: content is not an image")
	ErrTooLarge         = errors.New("upload: image too large")
	ErrBadDataURL       = errors.New("upload: malformed data url")
)

// New builds a project from raw image bytes. The id is the creation time in
// unix milliseconds.
func New(description string, data []byte, now time.Time) (gallery.Project, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return gallery.Project{}, ErrEmptyDescription
	}
	url, err := DataURL(data)
	if err != nil {
		return gallery.Project{}, err
	}
	return gallery.Project{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Description: description,
		ImageURL:    url,
	}, nil
}

// FromFile reads an image from disk and builds a project from it.
func FromFile(path, description string, now time.Time) (gallery.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gallery.Project{}, fmt.Errorf("upload: read %s: %w", path, err)
	}
	return New(description, data, now)
}

// DataURL sniffs the image type from its magic bytes and encodes it as a
// base64 data URL.
func DataURL(data []byte) (string, error) {
	mime, err := Sniff(data)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Sniff returns the MIME type of an image.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	if !filetype.IsImage(data) {
		return "", ErrNotImage
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return "", ErrNotImage
	}
	return kind.MIME.Value, nil
}

// ParseDataURL decodes a base64 data URL back into its MIME type and bytes.
func ParseDataURL(url string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrBadDataURL)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return mime, data, nil
}

// Extension maps an image MIME type to the file extension raylib expects
// when decoding from memory, e.g. ".png".
func Extension(mime string) string {
	var exts []string
	filetype.Types.Range(func(_, v any) bool {
		if t, ok := v.(types.Type); ok && t.MIME.Value == mime {
			exts = append(exts, t.Extension)
		}
		return true
	})
	if len(exts) == 0 {
		return "." + strings.TrimPrefix(mime, "image/")
	}
	sort.Strings(exts)
	return "." + exts[0]
}

// Open resolves an image reference to its bytes. Data URLs are decoded in
// place; anything else is read as a local file path.
func Open(ref string) (mime string, data []byte, err error) {
	if strings.HasPrefix(ref, "data:") {
		return ParseDataURL(ref)
	}
	data, err = os.ReadFile(ref)
	if err != nil {
		return "", nil, fmt.Errorf("upload: read %s: %w", ref, err)
	}
	mime, err = Sniff(data)
	if err != nil {
		return "", nil, err
	}
	return mime, data, nil
}
