package viewport

import "image"

// Rect is an integer rectangle given by its origin and extent.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Blit is one clipped tile: the part of the source image to copy and the
// virtual rectangle it lands on. Src and Dst always have the same size.
type Blit struct {
	Src Rect
	Dst Rect
}

// NormalizeOffset brings a tile phase offset into [0, size).
func NormalizeOffset(offset, size int) int {
	if size <= 0 {
		return 0
	}
	if offset < 0 {
		offset = size - (-offset % size)
	}
	return offset % size
}

// PlanTiles computes the blits that repeat an imgW x imgH image over dst.
// ix and iy shift the phase of the pattern: the first tile starts at
// (dst.X-ix, dst.Y-iy). Every tile is clipped against the four edges of dst
// so the returned destination rectangles cover dst exactly once and every
// source rectangle lies inside the image.
func PlanTiles(imgW, imgH int, dst Rect, ix, iy int) []Blit {
	if imgW <= 0 || imgH <= 0 || dst.Empty() {
		return nil
	}
	ix = NormalizeOffset(ix, imgW)
	iy = NormalizeOffset(iy, imgH)

	right := dst.X + dst.W
	bottom := dst.Y + dst.H

	cols := (dst.W + ix + imgW - 1) / imgW
	rows := (dst.H + iy + imgH - 1) / imgH
	blits := make([]Blit, 0, cols*rows)

	for ty := dst.Y - iy; ty < bottom; ty += imgH {
		for tx := dst.X - ix; tx < right; tx += imgW {
			src := Rect{X: 0, Y: 0, W: imgW, H: imgH}
			out := Rect{X: tx, Y: ty, W: imgW, H: imgH}

			if out.X < dst.X {
				over := dst.X - out.X
				src.X += over
				src.W -= over
				out.X = dst.X
			}
			if out.Y < dst.Y {
				over := dst.Y - out.Y
				src.Y += over
				src.H -= over
				out.Y = dst.Y
			}
			if out.X+src.W > right {
				src.W -= out.X + src.W - right
			}
			if out.Y+src.H > bottom {
				src.H -= out.Y + src.H - bottom
			}
			if src.Empty() {
				continue
			}
			out.W = src.W
			out.H = src.H
			blits = append(blits, Blit{Src: src, Dst: out})
		}
	}
	return blits
}
