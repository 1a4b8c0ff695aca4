package overlay

import (
	"fmt"
	"image"

	"cordshot/src/render"
)

const (
	borderWidth    = 2
	handleSize     = 8
	labelGapBelow  = 20
	labelGapAbove  = 10
	bannerTop      = 30
	labelPadX      = 8
	labelPadY      = 4
	bannerPadX     = 16
	bannerPadY     = 8
	labelRadius    = 4
	bannerRadius   = 6
	promptNoAnchor = "Click first point or drag to select • ESC to cancel"
	promptAnchor   = "Click second point or drag to select • ESC to cancel"
)

// Instructions is the banner text for the given selection.
func Instructions(hasAnchor bool) string {
	if hasAnchor {
		return promptAnchor
	}
	return promptNoAnchor
}

// DimensionText is the "W × H" label shown next to a selection.
func DimensionText(r image.Rectangle) string {
	return fmt.Sprintf("%d × %d", r.Dx(), r.Dy())
}

// Dim returns a copy of img with the scrim applied everywhere. It is computed
// once per overlay so frames only restore the selected region.
func Dim(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	render.Copy(out, img)
	render.Fill(out, out.Bounds(), render.Scrim)
	return out
}

// LabelOrigin places a label of the given size centred below sel, or above
// it when below would run off a surface of the given height.
func LabelOrigin(sel image.Rectangle, size image.Point, surfaceHeight int) image.Point {
	x := (sel.Min.X+sel.Max.X)/2 - size.X/2
	y := sel.Max.Y + labelGapBelow
	if y+size.Y > surfaceHeight {
		y = sel.Min.Y - size.Y - labelGapAbove
	}
	return image.Pt(x, y)
}

// BannerOrigin centres a banner of the given size at the top of the surface.
func BannerOrigin(size image.Point, surfaceWidth int) image.Point {
	return image.Pt((surfaceWidth-size.X)/2, bannerTop)
}

// paintSelection renders one overlay frame into dst. background and dimmed
// share dst's size and origin.
func paintSelection(dst, background, dimmed *image.RGBA, sel Selection) {
	render.Copy(dst, dimmed)
	b := dst.Bounds()

	if sel.HasAnchor {
		r := sel.Rect()
		render.CopyRegion(dst, rebase(background), r)
		render.StrokeRect(dst, r, borderWidth, render.Accent)
		for _, h := range render.Handles(r, handleSize) {
			render.Fill(dst, h, render.Accent)
		}

		label := render.Label{
			Text:    DimensionText(r),
			PadX:    labelPadX,
			PadY:    labelPadY,
			Radius:  labelRadius,
			Fill:    render.LabelBackground,
			TextCol: render.White,
		}
		label.Draw(dst, LabelOrigin(r, label.Size(), b.Dy()))
	}

	banner := render.Label{
		Text:    Instructions(sel.HasAnchor),
		PadX:    bannerPadX,
		PadY:    bannerPadY,
		Radius:  bannerRadius,
		Fill:    render.BannerBackground,
		TextCol: render.White,
	}
	banner.Draw(dst, BannerOrigin(banner.Size(), b.Dx()))
}

// rebase returns img viewed with its origin at (0, 0), sharing pixels.
func rebase(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	return &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect.Sub(img.Rect.Min)}
}
