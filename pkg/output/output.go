// Package output writes a run's findings in the JSON, CSV or TXT formats
// the external interface promises.
package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/duskline/subrecon/pkg/model"
)

var csvHeader = []string{
	"Domain", "IP", "Status", "Type", "CNAME", "Provider", "HTTP Status",
	"WAF", "Title", "Content Length", "Location", "Risk Score",
	"Risk Reasons", "Takeover", "Takeover Service",
}

// WriteJSON marshals findings as an indented JSON array, matching the
// reference exporter's `json.dump(indent=2, ensure_ascii=False)`.
func WriteJSON(w io.Writer, findings []*model.Finding) error {
	enc := jsoniter.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// WriteCSV writes findings as RFC 4180 CSV with a fixed header row. No
// third-party CSV library appears anywhere in the example pack, so this
// uses the standard library's encoding/csv.
func WriteCSV(w io.Writer, findings []*model.Finding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range findings {
		row := []string{
			f.Domain,
			f.IP,
			f.Status,
			f.RType,
			f.CNAME,
			f.Provider,
			strconv.Itoa(f.HTTPStatus),
			f.WAF,
			f.Title,
			strconv.Itoa(f.ContentLength),
			f.Location,
			strconv.Itoa(f.Score),
			strings.Join(f.RiskReasons, ", "),
			strconv.FormatBool(f.IsTakeover),
			f.TakeoverService,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTXT writes one domain per line.
func WriteTXT(w io.Writer, findings []*model.Finding) error {
	for _, f := range findings {
		if _, err := io.WriteString(w, f.Domain+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write dispatches to the format-specific writer named by format
// ("json", "csv", or "txt").
func Write(w io.Writer, findings []*model.Finding, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return WriteJSON(w, findings)
	case "csv":
		return WriteCSV(w, findings)
	default:
		return WriteTXT(w, findings)
	}
}
