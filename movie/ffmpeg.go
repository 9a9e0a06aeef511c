package movie

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"rasterkit/problem"
	"rasterkit/raster"
)

// FFmpeg pipes raw RGB frames into an external ffmpeg process. The process
// starts with the first frame, once the frame size is known.
type FFmpeg struct {
	frameCheck
	path   string
	cfg    Config
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	buf    []byte
}

// NewFFmpeg prepares an encoder writing to path. The ffmpeg binary is looked
// up immediately.
func NewFFmpeg(path string, cfg Config) (*FFmpeg, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bin, err := exec.LookPath(cfg.FFmpeg)
	if err != nil {
		return nil, fmt.Errorf("%w: could not find ffmpeg: %w", problem.ErrEncode, err)
	}
	cfg.FFmpeg = bin

	return &FFmpeg{path: path, cfg: cfg}, nil
}

// args returns the ffmpeg command line for frames of width x height.
func (f *FFmpeg) args(width, height int) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(f.cfg.FPS),
		"-i", "-",
		"-an",
		"-c:v", f.cfg.Codec,
		"-pix_fmt", "yuv420p",
		f.path,
	}
}

func (f *FFmpeg) start() error {
	args := f.args(f.size.X, f.size.Y)
	f.cmd = exec.Command(f.cfg.FFmpeg, args...)
	f.cmd.Stderr = &f.stderr

	stdin, err := f.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: could not open ffmpeg input: %w", problem.ErrEncode, err)
	}
	f.stdin = stdin

	slog.Debug("starting ffmpeg", "args", strings.Join(args, " "))
	if err := f.cmd.Start(); err != nil {
		return fmt.Errorf("%w: could not start ffmpeg: %w", problem.ErrEncode, err)
	}
	return nil
}

func (f *FFmpeg) AddFrame(frame *raster.Image) error {
	if err := f.add(frame); err != nil {
		return err
	}
	if f.cmd == nil {
		if err := f.start(); err != nil {
			f.finished = true
			return err
		}
	}

	f.buf = frame.AppendRGB(f.buf[:0])
	if _, err := f.stdin.Write(f.buf); err != nil {
		return fmt.Errorf("%w: could not write frame %d: %w", problem.ErrEncode, f.frames-1, err)
	}
	return nil
}

func (f *FFmpeg) Finish() error {
	if err := f.finish(); err != nil {
		return err
	}
	if f.cmd == nil {
		return fmt.Errorf("%w: movie has no frames", problem.ErrEncode)
	}

	cerr := f.stdin.Close()
	if err := f.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: ffmpeg failed: %w%s", problem.ErrEncode, err, f.details())
	}
	if cerr != nil && !errors.Is(cerr, io.ErrClosedPipe) {
		return fmt.Errorf("%w: could not close ffmpeg input: %w", problem.ErrEncode, cerr)
	}
	slog.Debug("movie written", "path", f.path, "frames", f.frames)

	return nil
}

func (f *FFmpeg) details() string {
	if msg := strings.TrimSpace(f.stderr.String()); msg != "" {
		return " (" + msg + ")"
	}
	return ""
}
