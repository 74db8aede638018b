// Package preview turns files and directories into lines of text for the
// preview pane.
package preview

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/store"
	"github.com/HaiFongPan/kupo/internal/utils"
)

const (
	// DefaultImageWidth is the thumbnail width in terminal cells
	DefaultImageWidth = 48
	maxImageBytes     = 20 << 20
	tabWidth          = 4
)

// ramp maps luminance to glyphs, dark to light
const ramp = " .:-=+*#%@"

// Loader reads preview content from a store
type Loader struct {
	store      store.Store
	maxBytes   int64
	imageWidth atomic.Int64
}

// NewLoader creates a loader that reads at most maxBytes of a text file
func NewLoader(st store.Store, maxBytes int64) *Loader {
	l := &Loader{store: st, maxBytes: maxBytes}
	l.imageWidth.Store(DefaultImageWidth)
	return l
}

// SetImageWidth changes the thumbnail width used for images. It is safe to
// call while a load is running; widths of four cells or less are ignored.
func (l *Loader) SetImageWidth(width int) {
	if width > 4 {
		l.imageWidth.Store(int64(width))
	}
}

// ImageWidth returns the current thumbnail width
func (l *Loader) ImageWidth() int {
	return int(l.imageWidth.Load())
}

// Load returns the preview lines for the entry at path
func (l *Loader) Load(ctx context.Context, path string, kind nav.Kind) ([]string, error) {
	if kind == nav.KindDir {
		return l.directory(ctx, path)
	}

	contentType, _ := utils.DetectContentType(path, nil)
	if utils.IsImageType(contentType) {
		lines, err := l.image(ctx, path)
		if err == nil {
			return lines, nil
		}
		// formats imaging cannot decode (webp, svg) still get a text attempt
		logrus.WithFields(logrus.Fields{"path": path, "error": err}).Debug("Image preview failed")
	}

	return l.text(ctx, path)
}

func (l *Loader) directory(ctx context.Context, path string) ([]string, error) {
	entries, err := l.store.ReadDir(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []string{"(empty directory)"}, nil
	}

	sorted := nav.SortEntries(entries)
	lines := make([]string, len(sorted))
	for i, e := range sorted {
		if e.IsDir() {
			lines[i] = e.Name + "/"
		} else {
			lines[i] = e.Name
		}
	}
	return lines, nil
}

func (l *Loader) text(ctx context.Context, path string) ([]string, error) {
	rc, err := l.store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxBytes+1))
	if err != nil {
		return nil, nav.Classify(err, path)
	}

	truncated := int64(len(data)) > l.maxBytes
	if truncated {
		data = data[:l.maxBytes]
	}

	if utils.LooksBinary(data) {
		return []string{fmt.Sprintf("(binary file, %s read)", utils.FormatSize(int64(len(data))))}, nil
	}

	lines := splitLines(data)
	if len(lines) == 0 {
		return []string{"(empty file)"}, nil
	}
	if truncated {
		lines = append(lines, fmt.Sprintf("... (truncated at %s)", utils.FormatSize(l.maxBytes)))
	}
	return lines, nil
}

func (l *Loader) image(ctx context.Context, path string) ([]string, error) {
	rc, err := l.store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := imaging.Decode(io.LimitReader(rc, maxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RenderImage(img, l.ImageWidth()), nil
}

// RenderImage draws img as text at most width cells wide. Terminal cells
// are about twice as tall as wide, so rows are halved.
func RenderImage(img image.Image, width int) []string {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil
	}
	if width > b.Dx() {
		width = b.Dx()
	}
	height := int(float64(width) * float64(b.Dy()) / float64(b.Dx()) / 2)
	if height < 1 {
		height = 1
	}

	thumb := imaging.Grayscale(imaging.Resize(img, width, height, imaging.Lanczos))

	lines := make([]string, height)
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		for x := 0; x < width; x++ {
			lum := thumb.NRGBAAt(x, y).R
			sb.WriteByte(ramp[int(lum)*(len(ramp)-1)/255])
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), len(data)+1)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth)))
	}
	return lines
}
