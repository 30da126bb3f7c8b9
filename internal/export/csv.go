package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"notary-crawler/internal/domain"
)

// Columns is the header of the export, in order.
var Columns = []string{"name", "mail", "phone", "website", "address"}

// Row projects a record onto the export columns.
func Row(n domain.Notary) map[string]string {
	return map[string]string{
		"name":    n.Name,
		"mail":    n.Mail,
		"phone":   n.Phone,
		"website": n.Website,
		"address": n.Address,
	}
}

// Export writes ns to path then drops rows with every field empty. It
// returns the number of data rows left in the file.
func Export(path string, ns []domain.Notary) (rows int, err error) {
	if err := WriteCSV(path, ns); err != nil {
		return 0, err
	}
	removed, err := RemoveEmptyRows(path)
	if err != nil {
		return 0, err
	}
	return len(ns) - removed, nil
}

// WriteCSV writes a header and one row per record, in order.
func WriteCSV(path string, ns []domain.Notary) error {
	return writeAtomic(path, records(ns))
}

// Write streams the same header and rows as WriteCSV to w.
func Write(w io.Writer, ns []domain.Notary) error {
	cw := csv.NewWriter(w)
	return cw.WriteAll(records(ns))
}

func records(ns []domain.Notary) [][]string {
	out := make([][]string, 0, len(ns)+1)
	out = append(out, slices.Clone(Columns))
	for _, n := range ns {
		m := Row(n)
		rec := make([]string, len(Columns))
		for i, col := range Columns {
			rec[i] = m[col]
		}
		out = append(out, rec)
	}
	return out
}

// RemoveEmptyRows rewrites the CSV at path without data rows whose fields
// are all empty. The header is kept.
func RemoveEmptyRows(path string) (removed int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	kept := records[:1]
	for _, rec := range records[1:] {
		if allEmpty(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, writeAtomic(path, kept)
}

func allEmpty(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

func writeAtomic(path string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
