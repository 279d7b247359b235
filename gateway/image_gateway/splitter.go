package image_gateway

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"flyer-ingest/domain"

	"golang.org/x/image/draw"
)

const (
	// wideAspectRatio is the width/height above which a composite is cut into pages.
	wideAspectRatio = 2.0
	// portraitPageRatio is page width as a fraction of the composite height.
	portraitPageRatio = 0.75
)

// Splitter cuts a composite into encoded page images.
type Splitter struct {
	maxDimension int
	jpegQuality  int
}

func NewSplitter(maxDimension, jpegQuality int) *Splitter {
	return &Splitter{
		maxDimension: maxDimension,
		jpegQuality:  jpegQuality,
	}
}

// Split returns one page, or sequential portrait-like crops when the
// composite is more than twice as wide as it is tall.
func (s *Splitter) Split(img image.Image) ([]domain.PageImage, error) {
	crops := PageBounds(img.Bounds())
	if len(crops) == 0 {
		return nil, domain.ErrNoPages
	}

	pages := make([]domain.PageImage, 0, len(crops))
	for i, rect := range crops {
		page, err := s.encode(crop(img, rect))
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i, err)
		}
		page.Index = i
		pages = append(pages, page)
	}
	return pages, nil
}

// PageBounds computes the crop rectangles for a composite of the given bounds.
// The last crop may be narrower than the others.
func PageBounds(bounds image.Rectangle) []image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	if float64(w)/float64(h) <= wideAspectRatio {
		return []image.Rectangle{bounds}
	}

	pageWidth := int(math.Round(float64(h) * portraitPageRatio))
	count := (w + pageWidth - 1) / pageWidth

	rects := make([]image.Rectangle, 0, count)
	for i := 0; i < count; i++ {
		x0 := bounds.Min.X + i*pageWidth
		x1 := min(x0+pageWidth, bounds.Max.X)
		rects = append(rects, image.Rect(x0, bounds.Min.Y, x1, bounds.Max.Y))
	}
	return rects
}

func (s *Splitter) encode(img image.Image) (domain.PageImage, error) {
	img = s.downscale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.jpegQuality}); err != nil {
		return domain.PageImage{}, err
	}

	b := img.Bounds()
	return domain.PageImage{
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// downscale shrinks img so its long side fits maxDimension.
func (s *Splitter) downscale(img image.Image) image.Image {
	b := img.Bounds()
	longSide := max(b.Dx(), b.Dy())
	if s.maxDimension <= 0 || longSide <= s.maxDimension {
		return img
	}

	scale := float64(s.maxDimension) / float64(longSide)
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, rect image.Rectangle) image.Image {
	if rect == img.Bounds() {
		return img
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}
