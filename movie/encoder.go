// Package movie turns sequences of images into animations.
package movie

import (
	"fmt"
	"image"

	"rasterkit/problem"
	"rasterkit/raster"
	"rasterkit/sys"
)

// Encoder receives frames in display order. All frames must have the size of
// the first one. Finish must be called once to flush the output, and no
// frames can be added afterwards.
type Encoder interface {
	AddFrame(frame *raster.Image) error
	Finish() error
}

// Create returns an animated GIF encoder for paths ending in .gif and an
// ffmpeg encoder for anything else.
func Create(path string, cfg Config) (Encoder, error) {
	if sys.Extension(path) == "gif" {
		return NewGIF(path, cfg)
	}
	return NewFFmpeg(path, cfg)
}

// frameCheck holds the checks shared by the encoders.
type frameCheck struct {
	size     image.Point
	frames   int
	finished bool
}

func (fc *frameCheck) add(frame *raster.Image) error {
	if fc.finished {
		return fmt.Errorf("%w: cannot add a frame to a finished movie", problem.ErrEncode)
	}
	if err := problem.CheckNotNil("movie frame", frame == nil); err != nil {
		return err
	}

	size := frame.Bounds().Size()
	if fc.frames == 0 {
		fc.size = size
	} else if size != fc.size {
		return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d", problem.ErrInvalidArgument,
			fc.frames, size.X, size.Y, fc.size.X, fc.size.Y)
	}
	fc.frames++
	return nil
}

func (fc *frameCheck) finish() error {
	if fc.finished {
		return fmt.Errorf("%w: movie already finished", problem.ErrEncode)
	}
	fc.finished = true
	return nil
}
