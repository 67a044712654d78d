package models

import (
	"errors"
	"time"
)

// Error kinds surfaced by pipeline stages. Stages wrap these with %w so the
// orchestrator can distinguish input problems from artifact problems.
var (
	// ErrDataFormat marks malformed or missing input. Unrecoverable.
	ErrDataFormat = errors.New("data format error")
	// ErrSegmentation marks insufficient data for the requested cluster count.
	ErrSegmentation = errors.New("segmentation error")
	// ErrArtifact marks a failure to write an output file.
	ErrArtifact = errors.New("artifact write error")
)

// Transaction is a single supermarket sale, one row of the input CSV.
type Transaction struct {
	InvoiceID    string
	Branch       string
	City         string
	CustomerType string
	Gender       string
	ProductLine  string
	UnitPrice    float64
	Quantity     int
	Sales        float64
	Date         time.Time // calendar date merged with the time-of-day column
	Payment      string
	Rating       float64
	Segment      int // cluster id, -1 until segmentation runs
}

// Month returns the English month name of the transaction date.
func (t Transaction) Month() string {
	return t.Date.Month().String()
}

// Weekday returns the English weekday name of the transaction date.
func (t Transaction) Weekday() string {
	return t.Date.Weekday().String()
}
