package accent

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Fallback is returned when no pixel of the thumbnail is usable, and for
// images too large to fetch.
const Fallback = "rgba(180,160,120,0.9)"

const (
	thumbSize     = 10
	minBrightness = 30.0
	maxBrightness = 220.0
	darken        = 0.8
)

// Extract computes a muted dominant color of img as "rgba(r,g,b,0.9)".
//
// The image is box-downscaled to 10x10. Pixels whose perceptual brightness
// (0.299R + 0.587G + 0.114B) is not strictly between 30 and 220 are ignored,
// which drops letterboxing and blown-out borders. The channel means of the
// remaining pixels are darkened by 0.8 and truncated.
func Extract(img image.Image) string {
	if img == nil || img.Bounds().Empty() {
		return Fallback
	}
	thumb := imaging.Resize(img, thumbSize, thumbSize, imaging.Box)

	var sumR, sumG, sumB float64
	var count int
	for y := 0; y < thumb.Rect.Dy(); y++ {
		row := thumb.Pix[y*thumb.Stride:]
		for x := 0; x < thumb.Rect.Dx(); x++ {
			r := float64(row[x*4])
			g := float64(row[x*4+1])
			b := float64(row[x*4+2])
			brightness := 0.299*r + 0.587*g + 0.114*b
			if brightness <= minBrightness || brightness >= maxBrightness {
				continue
			}
			sumR += r
			sumG += g
			sumB += b
			count++
		}
	}
	if count == 0 {
		return Fallback
	}

	n := float64(count)
	return format(uint8(sumR/n*darken), uint8(sumG/n*darken), uint8(sumB/n*darken))
}

func format(r, g, b uint8) string {
	return fmt.Sprintf("rgba(%d,%d,%d,0.9)", r, g, b)
}

// Decode decodes poster bytes. The content type picks the decoder; when it is
// missing or generic the bytes are sniffed.
func Decode(data []byte, contentType string) (image.Image, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" || mimeType == "application/octet-stream" || mimeType == "binary/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	reader := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch mimeType {
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(reader)
	case "image/png":
		img, err = png.Decode(reader)
	case "image/webp":
		img, err = webp.Decode(reader)
	default:
		img, err = imaging.Decode(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", mimeType, err)
	}
	return img, nil
}

// Parse converts an accent string into a color. It accepts the
// "rgba(r,g,b,a)" form produced by Extract, "rgb(r,g,b)" and "#rrggbb". The
// alpha channel is dropped.
func Parse(css string) (colorful.Color, error) {
	s := strings.TrimSpace(strings.ToLower(css))
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse color %q: %w", css, err)
		}
		return c, nil
	}

	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return colorful.Color{}, fmt.Errorf("parse color %q: unsupported format", css)
	}

	parts := strings.Split(body, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return colorful.Color{}, fmt.Errorf("parse color %q: want 3 or 4 components", css)
	}
	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return colorful.Color{}, fmt.Errorf("parse color %q: bad channel %q", css, parts[i])
		}
		channels[i] = uint8(v)
	}
	return colorful.Color{
		R: float64(channels[0]) / 255,
		G: float64(channels[1]) / 255,
		B: float64(channels[2]) / 255,
	}, nil
}
