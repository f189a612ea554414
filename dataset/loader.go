package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tanvis507/playerknn/pkg/errors"
	"github.com/tanvis507/playerknn/pkg/log"
)

// Column names expected in the input table. Header matching is
// case-insensitive, so the exporter's "Age" and a lowercase "age" both work.
var requiredColumns = []string{"age", "gender", "experience", "played_hours", "subscribe"}

// CleanReport summarizes what cleaning did to the raw table.
type CleanReport struct {
	// Rows is the number of records kept.
	Rows int
	// Dropped is the number of rows discarded because age was missing.
	Dropped int
}

// Load reads and cleans the player table at path.
func Load(path string) (*Dataset, CleanReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, CleanReport{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a delimited player table, drops rows with missing age, and
// returns the cleaned dataset. Rows with malformed values in any other
// required column fail the whole load with a DataError; missing age is the
// only condition handled by dropping, never by imputation.
func Read(r io.Reader) (*Dataset, CleanReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, CleanReport{}, errors.Wrap(err, "read header")
	}

	colIdx := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, CleanReport{}, errors.NewDataError(name, 0, "required column not found")
		}
	}

	var records []PlayerRecord
	dropped := 0
	row := 1 // header was row 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, CleanReport{}, errors.Wrapf(err, "read row %d", row)
		}

		ageRaw := cell(rec, colIdx["age"])
		if isMissing(ageRaw) {
			dropped++
			continue
		}
		age, err := strconv.ParseFloat(ageRaw, 64)
		if err != nil {
			return nil, CleanReport{}, errors.NewDataError("age", row, "not a number: "+ageRaw)
		}

		hoursRaw := cell(rec, colIdx["played_hours"])
		if isMissing(hoursRaw) {
			return nil, CleanReport{}, errors.NewDataError("played_hours", row, "missing value")
		}
		hours, err := strconv.ParseFloat(hoursRaw, 64)
		if err != nil {
			return nil, CleanReport{}, errors.NewDataError("played_hours", row, "not a number: "+hoursRaw)
		}
		if hours < 0 {
			return nil, CleanReport{}, errors.NewDataError("played_hours", row, "negative value")
		}

		subRaw := cell(rec, colIdx["subscribe"])
		subscribe, err := strconv.ParseBool(strings.ToLower(subRaw))
		if err != nil {
			return nil, CleanReport{}, errors.NewDataError("subscribe", row, "not a boolean: "+subRaw)
		}

		gender := cell(rec, colIdx["gender"])
		if isMissing(gender) {
			return nil, CleanReport{}, errors.NewDataError("gender", row, "missing value")
		}
		experience := cell(rec, colIdx["experience"])
		if isMissing(experience) {
			return nil, CleanReport{}, errors.NewDataError("experience", row, "missing value")
		}

		records = append(records, PlayerRecord{
			Age:         age,
			Gender:      gender,
			Experience:  experience,
			PlayedHours: hours,
			Subscribe:   subscribe,
		})
	}

	logger := log.Component("dataset")
	logger.Debug().
		Int(log.SamplesKey, len(records)).
		Int(log.DroppedKey, dropped).
		Msg("table cleaned")

	return New(records), CleanReport{Rows: len(records), Dropped: dropped}, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// isMissing reports whether a cell holds no usable value. "NA" and "NaN"
// are the usual markers in R and spreadsheet exports.
func isMissing(v string) bool {
	return v == "" || v == "NA" || v == "NaN" || v == "null"
}
