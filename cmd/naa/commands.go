package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/AbelV22/naa-engine/compliance"
	"github.com/AbelV22/naa-engine/csvload"
	"github.com/AbelV22/naa-engine/element"
	"github.com/AbelV22/naa-engine/isotope"
	"github.com/AbelV22/naa-engine/maxppm"
	"github.com/AbelV22/naa-engine/nucdata"
	"github.com/AbelV22/naa-engine/solve"
)

/******************************************************************************

File structured the same way poly/commands.go is: one function per top level
command, plus the helper functions they all share (loading the nuclear data
store, parsing Element=Value flag lists, and emitting the JSON report).

******************************************************************************/

func loadStore(c *cli.Context) (*nucdata.Store, error) {
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	diag := csvload.Diag(log)

	activationFile, err := os.Open(c.String("activation"))
	if err != nil {
		return nil, fmt.Errorf("opening activation table: %w", err)
	}
	defer activationFile.Close()
	activationRecords, err := csvload.LoadActivationRecords(activationFile, log)
	if err != nil {
		return nil, fmt.Errorf("loading activation table: %w", err)
	}

	var decayRecords []nucdata.DecayRecord
	if path := c.String("decay"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening decay table: %w", err)
		}
		defer f.Close()
		decayRecords, err = csvload.LoadDecayRecords(f, log)
		if err != nil {
			return nil, fmt.Errorf("loading decay table: %w", err)
		}
	}

	var limitRecords []nucdata.LimitRecord
	if path := c.String("limits"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening limits table: %w", err)
		}
		defer f.Close()
		limitRecords, err = csvload.LoadLimitRecords(f, log)
		if err != nil {
			return nil, fmt.Errorf("loading limits table: %w", err)
		}
	}

	return nucdata.BuildStore(activationRecords, decayRecords, limitRecords, diag)
}

func parseLimitKind(s string) nucdata.LimitKind {
	if strings.EqualFold(s, "exemption") {
		return nucdata.Exemption
	}
	return nucdata.Clearance
}

// parseKVFlags turns a repeated "Key=Value" flag list into a map, logging
// and skipping any entry that doesn't parse (spec §7: malformed input
// degrades gracefully, never a hard failure, at the collaborator boundary).
func parseKVFlags(entries []string) map[string]float64 {
	out := make(map[string]float64, len(entries))
	for _, e := range entries {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 {
			log.Warnf("naa: ignoring malformed Key=Value flag %q", e)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			log.Warnf("naa: ignoring malformed Key=Value flag %q: %v", e, err)
			continue
		}
		out[strings.TrimSpace(parts[0])] = v
	}
	return out
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func solveCommand(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}

	start, err := isotope.Parse(c.String("isotope"))
	if err != nil {
		return fmt.Errorf("parsing --isotope: %w", err)
	}

	results := solve.Solve(store, start, c.Float64("mass-g"), c.Float64("flux"), c.Float64("t-irr-s"), c.Float64("t-cool-s"), solve.Options{
		Abundance: c.Float64("abundance"),
		Depth:     c.Int("depth"),
	})
	return printJSON(results)
}

func elementCommand(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}

	results := element.Solve(store, c.String("element"), c.Float64("total-mass-g"), c.Float64("flux"), c.Float64("t-irr-s"), c.Float64("t-cool-s"), element.Options{
		Merge: c.Bool("merge"),
		Depth: c.Int("depth"),
	})
	return printJSON(results)
}

func complianceCommand(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}

	report := compliance.Evaluate(
		store,
		parseKVFlags(c.StringSlice("impurity")),
		c.String("main-element"),
		c.Float64("main-mass-g"),
		c.Float64("flux"),
		c.Float64("t-irr-s"),
		c.Float64("t-cool-s"),
		c.Float64("waste-mass-g"),
		parseLimitKind(c.String("limit-kind")),
		compliance.Options{Depth: c.Int("depth")},
	)
	return printJSON(report)
}

func maxPPMCommand(c *cli.Context) error {
	store, err := loadStore(c)
	if err != nil {
		return err
	}

	rows := maxppm.Evaluate(
		store,
		c.StringSlice("element"),
		c.Float64("flux"),
		c.Float64("t-irr-s"),
		c.Float64("t-cool-s"),
		c.Float64("waste-mass-g"),
		c.Float64("sample-mass-g"),
		parseLimitKind(c.String("limit-kind")),
		parseKVFlags(c.StringSlice("elem-fraction")),
		parseKVFlags(c.StringSlice("waste-fraction")),
		maxppm.Options{Depth: c.Int("depth")},
	)
	return printJSON(rows)
}
