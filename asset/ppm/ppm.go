// Package ppm reads and writes binary (P6) portable pixel maps.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/achilleasa/go-raytrace/asset"
)

// The file extension used for pixel map files.
const Ext = ".ppm"

const (
	magic  = "P6"
	maxVal = 255

	// Upper bound for the pixel data size accepted by Decode.
	maxPixelBytes = 1 << 29
)

var (
	ErrBufferSize     = errors.New("ppm: pixel buffer size does not match image dimensions")
	ErrInvalidMagic   = errors.New("ppm: not a binary (P6) pixel map")
	ErrInvalidHeader  = errors.New("ppm: malformed header")
	ErrUnsupportedMax = errors.New("ppm: only 8-bit pixel maps are supported")
)

// A decoded pixel map.
type Frame struct {
	Width  uint32
	Height uint32
	MaxVal uint32

	// RGB triplets in row-major order.
	Pix []uint8
}

// Encode an RGB pixel buffer as a binary pixel map.
func Encode(w io.Writer, pix []uint8, width, height uint32) error {
	if uint64(len(pix)) != 3*uint64(width)*uint64(height) {
		return ErrBufferSize
	}

	if _, err := fmt.Fprintf(w, "%s %d %d %d\n", magic, width, height, maxVal); err != nil {
		return err
	}
	_, err := w.Write(pix)
	return err
}

// Decode a binary pixel map.
func Decode(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	token, err := readToken(br)
	if err != nil {
		return nil, err
	}
	if token != magic {
		return nil, ErrInvalidMagic
	}

	var header [3]uint32
	for idx := range header {
		if token, err = readToken(br); err != nil {
			return nil, err
		}
		val, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		header[idx] = uint32(val)
	}

	frame := &Frame{
		Width:  header[0],
		Height: header[1],
		MaxVal: header[2],
	}
	if frame.MaxVal == 0 || frame.MaxVal > maxVal {
		return nil, ErrUnsupportedMax
	}

	// Both dimensions fit in 32 bits so the pixel count cannot overflow
	numPixels := uint64(frame.Width) * uint64(frame.Height)
	if numPixels > maxPixelBytes/3 {
		return nil, fmt.Errorf("%w: %dx%d image exceeds the %d byte limit", ErrInvalidHeader, frame.Width, frame.Height, maxPixelBytes)
	}

	frame.Pix = make([]uint8, 3*numPixels)
	if _, err = io.ReadFull(br, frame.Pix); err != nil {
		return nil, fmt.Errorf("ppm: could not read pixel data: %w", err)
	}

	return frame, nil
}

// Read a pixel map from a resource.
func ReadResource(res *asset.Resource) (*Frame, error) {
	frame, err := Decode(res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res.Path(), err)
	}
	return frame, nil
}

// Read the next whitespace-delimited header token skipping any comments. The
// single whitespace character terminating the token is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = ErrInvalidHeader
			}
			return "", err
		}

		switch {
		case b == '#' && sb.Len() == 0:
			if _, err = br.ReadString('\n'); err != nil {
				return "", ErrInvalidHeader
			}
		case isSpace(b):
			if sb.Len() != 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// Append the pixel map extension to path unless it already has it.
func Filename(path string) string {
	if filepath.Ext(path) == Ext {
		return path
	}
	return path + Ext
}

// Write a pixel map to a file and return the path that was written. The data
// is written to a temporary file which is then renamed to its final name so
// that a failed write never leaves behind a partial image.
func WriteFile(path string, pix []uint8, width, height uint32) (string, error) {
	path = Filename(path)

	if uint64(len(pix)) != 3*uint64(width)*uint64(height) {
		return "", ErrBufferSize
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	tmpFile := f.Name()

	bw := bufio.NewWriter(f)
	err = Encode(bw, pix, width, height)
	if err == nil {
		err = bw.Flush()
	}
	if err == nil {
		err = f.Chmod(0644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpFile, path)
	}

	if err != nil {
		os.Remove(tmpFile)
		return "", err
	}
	return path, nil
}
