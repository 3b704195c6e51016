package object

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// compressFrame zlib-compresses a frame for on-disk storage.
func compressFrame(frame []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(frame); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compress frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress frame: close: %w", err)
	}
	return buf.Bytes(), nil
}

// decompressFrame recovers a frame from its on-disk zlib form.
func decompressFrame(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress frame: %w", err)
	}
	defer zr.Close()

	frame, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress frame: %w", err)
	}
	return frame, nil
}
