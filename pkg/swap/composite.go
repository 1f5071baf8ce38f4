package swap

import (
	"image"

	"github.com/tauraamui/bgswap/pkg/imaging"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

// composite stretches the mask over the frame, stretches the background
// into a square covering the frame's longest side, blends the three and
// renders the result in the frame's own pixel format.
func (s *Swapper) composite(original, mask *videoframe.PixelBuffer, background image.Image) (*videoframe.PixelBuffer, error) {
	if mask.Format != videoframe.FormatOneComponent8 {
		return nil, xerror.Errorf("mask must be %s, got %s", videoframe.FormatOneComponent8, mask.Format)
	}

	originalImg, err := s.converter.ToImage(original)
	if err != nil {
		return nil, xerror.Errorf("unable to read frame pixels: %w", err)
	}
	maskImg, err := s.converter.ToImage(mask)
	if err != nil {
		return nil, xerror.Errorf("unable to read mask pixels: %w", err)
	}

	frameExtent := imaging.ExtentOf(originalImg)

	scaledMask, err := imaging.ScaleToExtent(maskImg, frameExtent)
	if err != nil {
		return nil, xerror.Errorf("unable to scale mask: %w", err)
	}
	scaledBackground, err := imaging.ScaleToSquare(background, frameExtent)
	if err != nil {
		return nil, xerror.Errorf("unable to scale background: %w", err)
	}

	blended, err := s.blender.Blend(originalImg, scaledBackground, scaledMask)
	if err != nil {
		return nil, xerror.Errorf("unable to blend: %w", err)
	}

	out, err := s.converter.ToPixelBuffer(blended, original.Format)
	if err != nil {
		return nil, xerror.Errorf("unable to render output buffer: %w", err)
	}
	return out, nil
}
