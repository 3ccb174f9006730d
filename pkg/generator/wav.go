// wav.go — Pure Go RIFF/WAVE writer for mono 8-bit PCM.
// Mirrors the canonical 44-byte header layout; ReadWAV walks chunks so files
// carrying LIST or fact chunks still decode.
package generator

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidWAV is returned by ReadWAV for streams it cannot decode.
var ErrInvalidWAV = errors.New("generator: invalid WAV")

const (
	riffHeaderSize  = 12 // "RIFF" + size + "WAVE"
	chunkHeaderSize = 8  // id + size
	fmtChunkSize    = 16
	wavHeaderSize   = riffHeaderSize + chunkHeaderSize + fmtChunkSize + chunkHeaderSize // 44

	formatPCM = 1
)

// EncodeWAV wraps unsigned 8-bit mono samples in a RIFF/WAVE container.
// An empty sample slice yields a valid file with an empty data chunk.
func EncodeWAV(samples []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("encode WAV: invalid sample rate %d", sampleRate)
	}
	dataSize := uint32(len(samples))
	buf := make([]byte, wavHeaderSize+len(samples))

	// RIFF header
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36+dataSize)
	copy(buf[8:12], "WAVE")

	// fmt chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(buf[20:22], formatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], 1)                  // mono
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate)) // sample rate
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate)) // byte rate
	binary.LittleEndian.PutUint16(buf[32:34], 1)                  // block align
	binary.LittleEndian.PutUint16(buf[34:36], 8)                  // bits per sample

	// data chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], dataSize)
	copy(buf[wavHeaderSize:], samples)

	return buf, nil
}

// ReadWAV decodes a mono 8-bit PCM WAV stream, returning its samples and rate.
func ReadWAV(data []byte) (samples []byte, sampleRate int, err error) {
	if len(data) < riffHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%w: missing RIFF/WAVE header", ErrInvalidWAV)
	}
	if size := binary.LittleEndian.Uint32(data[4:8]); int64(size) != int64(len(data)-8) {
		return nil, 0, fmt.Errorf("%w: RIFF size %d, file holds %d", ErrInvalidWAV, size, len(data)-8)
	}

	var haveFmt bool
	off := riffHeaderSize
	for off+chunkHeaderSize <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + chunkHeaderSize
		if size < 0 || body+size > len(data) {
			return nil, 0, fmt.Errorf("%w: %q chunk overruns file", ErrInvalidWAV, id)
		}

		switch id {
		case "fmt ":
			if size < fmtChunkSize {
				return nil, 0, fmt.Errorf("%w: fmt chunk is %d bytes", ErrInvalidWAV, size)
			}
			f := data[body : body+size]
			format := binary.LittleEndian.Uint16(f[0:2])
			channels := binary.LittleEndian.Uint16(f[2:4])
			bits := binary.LittleEndian.Uint16(f[14:16])
			if format != formatPCM || channels != 1 || bits != 8 {
				return nil, 0, fmt.Errorf("%w: format %d, %d channels, %d bits; want PCM mono 8-bit",
					ErrInvalidWAV, format, channels, bits)
			}
			sampleRate = int(binary.LittleEndian.Uint32(f[4:8]))
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, 0, fmt.Errorf("%w: data chunk before fmt", ErrInvalidWAV)
			}
			out := make([]byte, size)
			copy(out, data[body:body+size])
			return out, sampleRate, nil
		}

		off = body + size
		if size%2 != 0 {
			off++ // pad byte
		}
	}
	return nil, 0, fmt.Errorf("%w: no data chunk", ErrInvalidWAV)
}
