package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/godsim/internal/dynamo"
)

type ExportData struct {
	Run   RunMetadata    `json:"run"`
	Ticks int            `json:"ticks"`
	Stats []dynamo.Stats `json:"stats"`
}

// ExportJSON writes a run and its stats as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, stats []dynamo.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Ticks: len(stats), Stats: stats})
}

// ExportZstd writes the same document as ExportJSON, zstd compressed.
func ExportZstd(w io.Writer, meta RunMetadata, stats []dynamo.Stats) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)
	if err := ExportJSON(bw, meta, stats); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// ReadExport decodes an export produced by ExportJSON or ExportZstd.
func ReadExport(r io.Reader, compressed bool) (*ExportData, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	var data ExportData
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &data, nil
}
