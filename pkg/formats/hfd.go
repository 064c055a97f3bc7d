// Package formats reads and writes heightfield files.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// HFD format errors.
var (
	ErrInvalidHFDMagic       = errors.New("invalid HFD magic: expected 'HFLD'")
	ErrUnsupportedHFDVersion = errors.New("unsupported HFD version")
	ErrTruncatedHFDData      = errors.New("truncated HFD data")
	ErrInvalidHFDSize        = errors.New("invalid HFD world size")
)

const (
	hfdMagic      = "HFLD"
	hfdHeaderSize = 4 + 2 + 4 + 4 + 6*4

	// MaxHFDDimension bounds each side of a heightfield file.
	MaxHFDDimension = 8193
)

// HFDVersion represents the HFD file version.
type HFDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v HFDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentHFDVersion is written by Encode.
var CurrentHFDVersion = HFDVersion{Major: 1, Minor: 0}

// HFD is a heightfield file: a grid of float32 samples stored row-major
// together with the world placement of the grid.
type HFD struct {
	Version HFDVersion
	Cols    uint32
	Rows    uint32
	Origin  [3]float32 // world position of sample (0, 0)
	Size    [3]float32 // world extent
	Heights []float32  // len == Cols*Rows
}

// At returns the sample at (col, row).
func (h *HFD) At(col, row int) float32 {
	return h.Heights[row*int(h.Cols)+col]
}

// ParseHFD parses a heightfield file from raw bytes.
func ParseHFD(data []byte) (*HFD, error) {
	if len(data) < hfdHeaderSize {
		return nil, ErrTruncatedHFDData
	}

	if string(data[0:4]) != hfdMagic {
		return nil, ErrInvalidHFDMagic
	}

	// Version is stored as [minor, major]
	version := HFDVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentHFDVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedHFDVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var header struct {
		Cols   uint32
		Rows   uint32
		Origin [3]float32
		Size   [3]float32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedHFDData)
	}

	if header.Cols == 0 || header.Rows == 0 || header.Cols > MaxHFDDimension || header.Rows > MaxHFDDimension {
		return nil, fmt.Errorf("invalid HFD dimensions: %dx%d", header.Cols, header.Rows)
	}

	if err := checkSize(header.Size); err != nil {
		return nil, err
	}

	count := int(header.Cols) * int(header.Rows)
	if r.Len() < count*4 {
		return nil, fmt.Errorf("%w: expected %d samples, have %d bytes", ErrTruncatedHFDData, count, r.Len())
	}

	hfd := &HFD{
		Version: version,
		Cols:    header.Cols,
		Rows:    header.Rows,
		Origin:  header.Origin,
		Size:    header.Size,
		Heights: make([]float32, count),
	}
	if err := binary.Read(r, binary.LittleEndian, hfd.Heights); err != nil {
		return nil, fmt.Errorf("%w: reading samples", ErrTruncatedHFDData)
	}

	return hfd, nil
}

// ParseHFDFile parses a heightfield file from disk.
func ParseHFDFile(path string) (*HFD, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading HFD file: %w", err)
	}
	return ParseHFD(data)
}

// Encode writes h in the current version.
func (h *HFD) Encode(w io.Writer) error {
	if len(h.Heights) != int(h.Cols)*int(h.Rows) {
		return fmt.Errorf("HFD has %d samples for %dx%d", len(h.Heights), h.Cols, h.Rows)
	}
	if err := checkSize(h.Size); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(hfdMagic)
	bw.WriteByte(CurrentHFDVersion.Minor)
	bw.WriteByte(CurrentHFDVersion.Major)

	fields := []any{h.Cols, h.Rows, h.Origin, h.Size, h.Heights}
	for _, f := range fields {
		if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// checkSize rejects world extents that cannot map points onto the grid.
// X and Z must be positive and finite; Y is informational and only needs to be finite.
func checkSize(size [3]float32) error {
	for i, v := range size {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || (i != 1 && f <= 0) {
			return fmt.Errorf("%w: %v", ErrInvalidHFDSize, size)
		}
	}
	return nil
}

// WriteHFDFile writes h to path, replacing any existing file.
func WriteHFDFile(path string, h *HFD) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.Encode(&buf); err != nil {
		return fmt.Errorf("encoding HFD: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
