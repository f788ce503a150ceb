// AngelaMos | 2026
// csv.go

package product

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVStats reports what a catalog CSV parse kept and dropped.
type CSVStats struct {
	Kept      int
	Filtered  int
	Malformed int
}

// ParseCSV reads catalog rows from r. Columns are resolved by header name,
// so column order does not matter. keep filters rows by category id; a nil
// keep accepts everything. Malformed numeric fields coerce to zero rather
// than dropping the row; rows without an asin are dropped.
func ParseCSV(
	r io.Reader,
	keep func(categoryID int) bool,
) ([]CreateProductRequest, CSVStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var stats CSVStats

	header, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[strings.TrimSpace(name)] = idx
	}

	if _, ok := cols["asin"]; !ok {
		return nil, stats, errors.New("csv missing asin column")
	}

	var rows []CreateProductRequest

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Malformed++
			continue
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		categoryID := parseInt(field("category_id"))
		if keep != nil && !keep(categoryID) {
			stats.Filtered++
			continue
		}

		asin := field("asin")
		if asin == "" {
			stats.Malformed++
			continue
		}

		rows = append(rows, CreateProductRequest{
			ASIN:         asin,
			Title:        field("title"),
			ImgURL:       optional(field("imgUrl")),
			ProductURL:   optional(field("productURL")),
			Stars:        parseFloat(field("stars")),
			Reviews:      parseInt64(field("reviews")),
			Price:        parseFloat(field("price")),
			ListPrice:    parseFloat(field("listPrice")),
			CategoryID:   categoryID,
			IsBestSeller: parseBool(field("isBestSeller")),
		})
	}

	stats.Kept = len(rows)
	return rows, stats, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	return s == "True" || s == "true"
}
