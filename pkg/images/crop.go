package images

import (
	"image"

	"golang.org/x/image/draw"
)

// CropRect returns the centred region of a srcW x srcH image that has the
// aspect ratio of dstW x dstH.
func CropRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	x, y, w, h := 0, 0, srcW, srcH
	// dstW/srcW > dstH/srcH
	if dstW*srcH > dstH*srcW {
		h = ceilDiv(dstH*srcW, dstW)
		y = (srcH - h) / 2
	} else {
		w = ceilDiv(dstW*srcH, dstH)
		x = (srcW - w) / 2
	}
	return image.Rect(x, y, x+w, y+h)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// CenterCrop scales src to cover w x h and cuts off what sticks out on
// either side, keeping the aspect ratio.
func CenterCrop(src image.Image, w, h int) image.Image {
	sb := src.Bounds()
	if w <= 0 || h <= 0 || sb.Empty() {
		return src
	}
	r := CropRect(sb.Dx(), sb.Dy(), w, h).Add(sb.Min)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
	return dst
}
