// Package generator serializes rendered images and sound buffers into PNG and
// WAV files without an imaging or audio codec library.
//
// Every output is assembled in memory first and then written with one atomic
// rename, so a failed asset never leaves a partial file behind.
package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the payload for one output file.
type Config struct {
	Image      Pixels // ".png" outputs
	Samples    []byte // ".wav" outputs, unsigned 8-bit mono
	SampleRate int    // ".wav" outputs, in Hz
}

// Generate encodes cfg and writes it to output. The format is inferred from
// the file extension:
//   - ".png" → PNG image from cfg.Image
//   - ".wav" → RIFF/WAVE PCM from cfg.Samples
func Generate(output string, cfg Config) error {
	data, err := Encode(filepath.Ext(output), cfg)
	if err != nil {
		return err
	}
	return WriteFile(output, data)
}

// GenerateToWriter writes the encoded payload to w. The format is specified
// by ext (".png" or ".wav"). Used for in-memory consumers such as the preview
// server.
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	data, err := Encode(ext, cfg)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

// Encode returns the complete file contents for the given extension.
func Encode(ext string, cfg Config) ([]byte, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".png":
		if cfg.Image == nil {
			return nil, fmt.Errorf("encode %s: no image", ext)
		}
		return EncodePNG(cfg.Image)
	case ".wav":
		return EncodeWAV(cfg.Samples, cfg.SampleRate)
	default:
		return nil, fmt.Errorf("unsupported format %q: use .png or .wav", ext)
	}
}

// WriteFile writes data to path through a temporary sibling file and a
// rename. Parent directories are created as needed.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
