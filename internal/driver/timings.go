package driver

import (
	"encoding/json"
	"fmt"

	"tsxlower/internal/diag"
	"tsxlower/internal/observ"
	"tsxlower/internal/source"
)

type timingPayload struct {
	Kind    string         `json:"kind"`
	Path    string         `json:"path,omitempty"`
	TotalMS float64        `json:"total_ms"`
	Stages  []observ.Stage `json:"stages"`
}

// TimingDiagnostic renders a stage report as an informational diagnostic.
// The note carries the report as JSON.
func TimingDiagnostic(kind, path string, report observ.Report) diag.Diagnostic {
	if kind == "" {
		kind = "file"
	}
	payload := timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Stages: report.Stages}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s, %s", msg, path)
	}
	d := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
	}
	if data, err := json.Marshal(payload); err == nil {
		d.Notes = []diag.Note{{Span: source.Span{}, Msg: string(data)}}
	}
	return d
}
