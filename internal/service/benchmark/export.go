package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

var csvHeader = []string{
	"Experiment", "BoardSize", "WinRequirement", "Algorithm", "Depth", "Seed",
	"NodesExpanded", "Pruned", "Moves", "TimeMs", "Result",
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			string(r.Experiment),
			r.Board,
			strconv.Itoa(int(r.WinLength)),
			string(r.Algorithm),
			strconv.Itoa(int(r.Depth)),
			strconv.FormatInt(r.Seed, 10),
			strconv.FormatInt(r.NodesExpanded, 10),
			strconv.FormatInt(r.NodesPruned, 10),
			strconv.Itoa(int(r.Moves)),
			strconv.FormatFloat(r.ElapsedMs, 'f', 3, 64),
			strconv.Itoa(int(r.Result)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParquet writes rows as a zstd compressed parquet file.
func WriteParquet(w io.Writer, rows []Row) error {
	pw := parquet.NewGenericWriter[Row](w,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	pw.SetKeyValueMetadata("schema", "benchmark_row_v1")
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads back rows written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]Row, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, err
	}
	reader := parquet.NewGenericReader[Row](f)
	defer reader.Close()

	rows := make([]Row, f.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return rows[:n], nil
}
