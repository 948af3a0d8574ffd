// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
)

// LoadPage reads a page image from disk and re-encodes it as PNG for the
// data-URL payload. Accepted source formats are png, jpeg, and bmp; the
// decode doubles as validation that the file is actually a raster image.
// Per prd001-analysis R2.1-R2.3.
func LoadPage(path string) (Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return Page{}, fmt.Errorf("opening page image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Page{}, fmt.Errorf("decoding page image %s: %w", path, err)
	}

	var buf bytes.Buffer
	if format == "png" {
		// Already PNG: reuse the original bytes rather than re-compressing.
		data, err := os.ReadFile(path)
		if err != nil {
			return Page{}, fmt.Errorf("reading page image %s: %w", path, err)
		}
		buf.Write(data)
	} else if err := png.Encode(&buf, img); err != nil {
		return Page{}, fmt.Errorf("encoding page image %s as PNG: %w", path, err)
	}

	return Page{Name: filepath.Base(path), PNG: buf.Bytes()}, nil
}

// LoadPages loads the given paths in order. Order is meaningful: page 1
// must come first. Per prd001-analysis R2.2.
func LoadPages(paths []string) ([]Page, error) {
	pages := make([]Page, 0, len(paths))
	for _, p := range paths {
		page, err := LoadPage(p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
