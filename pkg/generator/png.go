// png.go — Pure Go PNG writer for 8-bit truecolor+alpha images.
// Builds the chunk stream by hand (IHDR, one IDAT, IEND) and compresses the
// filtered scanlines with a zlib stream.
package generator

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Errors reported by ReadChunks.
var (
	ErrBadSignature = errors.New("generator: not a PNG stream")
	ErrTruncated    = errors.New("generator: truncated chunk")
	ErrChecksum     = errors.New("generator: chunk CRC mismatch")
)

// Pixels is a row-major RGBA buffer with straight alpha, 4 bytes per pixel.
type Pixels interface {
	Width() int
	Height() int
	Pix() []uint8
}

// Chunk is one decoded PNG chunk.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

// EncodePNG serializes img as a PNG stream. The whole file is built in memory.
func EncodePNG(img Pixels) ([]byte, error) {
	w, h := img.Width(), img.Height()
	pix := img.Pix()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("encode PNG: invalid size %dx%d", w, h)
	}
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("encode PNG: buffer holds %d bytes, want %d", len(pix), w*h*4)
	}

	// Scanlines, each prefixed with filter type 0 (None).
	stride := w * 4
	raw := make([]byte, 0, h*(stride+1))
	for y := 0; y < h; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	idat, err := deflate(raw)
	if err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // color type: truecolor with alpha
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter
	ihdr[12] = 0 // interlace

	var buf bytes.Buffer
	buf.Grow(len(pngSignature) + 3*12 + len(ihdr) + len(idat))
	buf.Write(pngSignature)
	writeChunk(&buf, "IHDR", ihdr)
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

func deflate(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// writeChunk appends length, type, payload and CRC32(type+payload).
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(data)))
	buf.Write(u32[:])
	buf.WriteString(typ)
	buf.Write(data)
	binary.BigEndian.PutUint32(u32[:], chunkCRC(typ, data))
	buf.Write(u32[:])
}

func chunkCRC(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write([]byte(typ))
	h.Write(data)
	return h.Sum32()
}

// ReadChunks splits a PNG stream into chunks, checking every CRC.
// It stops after IEND; a stream that ends before IEND is truncated.
func ReadChunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, ErrBadSignature
	}
	var chunks []Chunk
	off := len(pngSignature)
	for off < len(data) {
		if len(data)-off < 12 {
			return chunks, fmt.Errorf("%w at offset %d", ErrTruncated, off)
		}
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if n < 0 || len(data)-off-12 < n {
			return chunks, fmt.Errorf("%w: %s wants %d bytes", ErrTruncated, typ, n)
		}
		payload := data[off+8 : off+8+n]
		crc := binary.BigEndian.Uint32(data[off+8+n : off+12+n])
		if got := chunkCRC(typ, payload); got != crc {
			return chunks, fmt.Errorf("%w: %s stored %08x, computed %08x", ErrChecksum, typ, crc, got)
		}
		chunks = append(chunks, Chunk{Type: typ, Data: payload, CRC: crc})
		off += 12 + n
		if typ == "IEND" {
			return chunks, nil
		}
	}
	return chunks, fmt.Errorf("%w: no IEND", ErrTruncated)
}
