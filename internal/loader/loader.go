// Package loader reads the supermarket transactions CSV into memory and
// validates it against the expected thirteen-column schema.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kstrelnikov/salesanalyzer/internal/compress"
	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

// RequiredColumns lists the headers the input CSV must carry. Matching is an
// exact string comparison after trimming surrounding whitespace.
var RequiredColumns = []string{
	"Invoice ID",
	"Branch",
	"City",
	"Customer type",
	"Gender",
	"Product line",
	"Unit price",
	"Quantity",
	"Sales",
	"Date",
	"Time",
	"Payment",
	"Rating",
}

var dateLayouts = []string{"1/2/2006", "01/02/2006", "2006-01-02"}

var timeLayouts = []string{"15:04", "15:04:05", "3:04:05 PM", "3:04 PM"}

// Load reads the transaction table from path. A .zip or .tar archive is
// unpacked in memory and the first CSV inside it is used; anything else is
// treated as plain CSV. Every failure is an ErrDataFormat.
func Load(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataFormat, err)
	}

	var r io.ReadCloser = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		r, err = compress.NewZipReader(f)
	case ".tar":
		r, err = compress.NewTarReader(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataFormat, err)
	}
	defer r.Close()

	return Parse(r)
}

// Parse decodes CSV text into the transaction table. The whole input is
// rejected on the first malformed row so the table is never partially
// populated.
func Parse(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", models.ErrDataFormat, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", models.ErrDataFormat, col)
		}
	}

	var table []models.Transaction
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", models.ErrDataFormat, line, err)
		}

		t, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", models.ErrDataFormat, line, err)
		}
		table = append(table, t)
	}

	return table, nil
}

func parseRow(row []string, idx map[string]int) (models.Transaction, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	unitPrice, err := strconv.ParseFloat(get("Unit price"), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad unit price %q", get("Unit price"))
	}
	quantity, err := strconv.Atoi(get("Quantity"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad quantity %q", get("Quantity"))
	}
	sales, err := strconv.ParseFloat(get("Sales"), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad sales total %q", get("Sales"))
	}
	rating, err := strconv.ParseFloat(get("Rating"), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad rating %q", get("Rating"))
	}

	day, err := parseWith(dateLayouts, get("Date"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad date %q", get("Date"))
	}
	clock, err := parseWith(timeLayouts, get("Time"))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad time %q", get("Time"))
	}

	return models.Transaction{
		InvoiceID:    get("Invoice ID"),
		Branch:       get("Branch"),
		City:         get("City"),
		CustomerType: get("Customer type"),
		Gender:       get("Gender"),
		ProductLine:  get("Product line"),
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		Sales:        sales,
		Date: time.Date(day.Year(), day.Month(), day.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC),
		Payment: get("Payment"),
		Rating:  rating,
		Segment: -1,
	}, nil
}

func parseWith(layouts []string, s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", s)
}
