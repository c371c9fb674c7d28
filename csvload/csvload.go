/*
Package csvload is the CSV record loader collaborator: it turns raw CSV
rows into the typed records nucdata.BuildStore consumes. It is not part
of the core engine (spec §1, §6) and may reject nothing outright except a
structurally broken CSV file. Malformed numeric fields read as zero
without a diagnostic; every row is passed through, and rows whose isotope
text does not parse are dropped, with a diagnostic, by nucdata.BuildStore.
*/
package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AbelV22/naa-engine/nucdata"
)

// header maps a column name to its index in a CSV row, case-insensitively.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csvload: reading header: %w", err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

// field returns row[column name], or "" if the row is short or the column
// is absent (unknown/missing columns are ignored, never a hard error, per
// spec §9 "reject unknown columns only as warnings").
func (h header) field(row []string, name string) string {
	i, ok := h[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseFloat tolerates a comma decimal separator and scientific notation;
// anything else, including an empty field, reads as 0 (spec §6: "Malformed
// numbers read as 0").
func parseFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	s := strings.TrimSpace(raw)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// LoadActivationRecords reads the activation table: Symbol, A,
// Daughter_Isotope, Reaction, Max_XS, Decay_Constant_Lambda (optional),
// Abundance (optional) (spec §6). log may be nil to discard diagnostics.
func LoadActivationRecords(r io.Reader, log *logrus.Logger) ([]nucdata.ActivationRecord, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var records []nucdata.ActivationRecord
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvload: activation row %d: %w", rowNum, err)
		}

		reaction := nucdata.ReactionType(strings.ToLower(strings.TrimSpace(h.field(row, "Reaction"))))
		records = append(records, nucdata.ActivationRecord{
			ParentSymbol:    strings.TrimSpace(h.field(row, "Symbol")),
			ParentA:         parseInt(h.field(row, "A")),
			DaughterText:    strings.TrimSpace(h.field(row, "Daughter_Isotope")),
			Reaction:        reaction,
			SigmaBarn:       parseFloat(h.field(row, "Max_XS")),
			DaughterLambda:  parseFloat(h.field(row, "Decay_Constant_Lambda")),
			ParentAbundance: parseFloat(h.field(row, "Abundance")),
		})
	}
	logWarnIfEmpty(log, "activation", len(records))
	return records, nil
}

// LoadDecayRecords reads the decay table: Parent_Isotope, Child_Isotope,
// Branching_Ratio, Parent_Lambda, Child_Lambda (spec §6).
func LoadDecayRecords(r io.Reader, log *logrus.Logger) ([]nucdata.DecayRecord, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var records []nucdata.DecayRecord
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvload: decay row %d: %w", rowNum, err)
		}

		records = append(records, nucdata.DecayRecord{
			ParentText:     strings.TrimSpace(h.field(row, "Parent_Isotope")),
			DaughterText:   strings.TrimSpace(h.field(row, "Child_Isotope")),
			Beta:           parseFloat(h.field(row, "Branching_Ratio")),
			ParentLambda:   parseFloat(h.field(row, "Parent_Lambda")),
			DaughterLambda: parseFloat(h.field(row, "Child_Lambda")),
		})
	}
	logWarnIfEmpty(log, "decay", len(records))
	return records, nil
}

// LoadLimitRecords reads the limits table: Isotope, Limit_Clearance_Bq_g,
// Limit_Exemption_Bq_g (spec §6).
func LoadLimitRecords(r io.Reader, log *logrus.Logger) ([]nucdata.LimitRecord, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	var records []nucdata.LimitRecord
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvload: limit row %d: %w", rowNum, err)
		}

		records = append(records, nucdata.LimitRecord{
			IsotopeText:     strings.TrimSpace(h.field(row, "Isotope")),
			ClearanceBqPerG: parseFloat(h.field(row, "Limit_Clearance_Bq_g")),
			ExemptionBqPerG: parseFloat(h.field(row, "Limit_Exemption_Bq_g")),
		})
	}
	logWarnIfEmpty(log, "limits", len(records))
	return records, nil
}

func logWarnIfEmpty(log *logrus.Logger, table string, n int) {
	if log == nil {
		return
	}
	if n == 0 {
		log.WithField("table", table).Warn("csvload: table produced zero rows")
		return
	}
	log.WithField("table", table).WithField("rows", n).Debug("csvload: table loaded")
}

// Diag adapts a *logrus.Logger into the nucdata.DiagFunc signature the
// store and its collaborators report through (spec §7: callers supply
// their own diagnostic sink, the engine never logs globally).
func Diag(log *logrus.Logger) nucdata.DiagFunc {
	if log == nil {
		return nil
	}
	return func(format string, args ...interface{}) {
		log.Warnf(format, args...)
	}
}
