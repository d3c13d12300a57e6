/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package compress

import (
	"compress/zlib"
	"io"
)

// ZlibCompressor represents a zlib stream compressor. Writers and
// readers are created lazily on first use, since zlib.NewReader blocks
// until the peer's stream header arrives.
type ZlibCompressor struct {
	level int
	w     io.Writer
	r     io.Reader
	zw    *zlib.Writer
	zr    io.ReadCloser
}

// NewZlibCompressor returns a new zlib compression method wrapping the
// given reader and writer.
func NewZlibCompressor(reader io.Reader, writer io.Writer, level Level) *ZlibCompressor {
	z := &ZlibCompressor{
		w: writer,
		r: reader,
	}
	switch level {
	case BestCompression:
		z.level = zlib.BestCompression
	case SpeedCompression:
		z.level = zlib.BestSpeed
	default:
		z.level = zlib.DefaultCompression
	}
	return z
}

func (z *ZlibCompressor) Write(p []byte) (int, error) {
	if z.zw == nil {
		zw, err := zlib.NewWriterLevel(z.w, z.level)
		if err != nil {
			return 0, err
		}
		z.zw = zw
	}
	defer func() { _ = z.zw.Flush() }()
	return z.zw.Write(p)
}

func (z *ZlibCompressor) Read(p []byte) (int, error) {
	if z.zr == nil {
		zr, err := zlib.NewReader(z.r)
		if err != nil {
			return 0, err
		}
		z.zr = zr
	}
	return z.zr.Read(p)
}
