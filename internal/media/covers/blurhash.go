package covers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize is the thumbnail edge used for blurhash computation.
// The hash encodes a handful of DCT components, so anything beyond a
// small thumbnail is wasted decoding work.
const blurHashSize = 64

// ComputeBlurHash generates a blurhash placeholder from raw image bytes.
// Uses 4x3 components, which keeps the hash around 20-30 characters.
func ComputeBlurHash(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode cover image: %w", err)
	}

	hash, err := blurhash.Encode(4, 3, resizeForBlurHash(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// resizeForBlurHash shrinks the image to at most blurHashSize on its long
// edge with nearest-neighbor sampling, which is plenty for a placeholder.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = blurHashSize
		dstHeight = max(1, (srcHeight*blurHashSize)/srcWidth)
	} else {
		dstHeight = blurHashSize
		dstWidth = max(1, (srcWidth*blurHashSize)/srcHeight)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	for y := 0; y < dstHeight; y++ {
		srcY := bounds.Min.Y + y*srcHeight/dstHeight
		for x := 0; x < dstWidth; x++ {
			srcX := bounds.Min.X + x*srcWidth/dstWidth
			dst.Set(x, y, img.At(srcX, srcY))
		}
	}
	return dst
}
