package surface_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stockfit/stockfit/pkg/scoring"
	"github.com/stockfit/stockfit/pkg/surface"
)

func sampleEvaluation() *scoring.Evaluation {
	m := scoring.Metrics{
		PE:            30.2,
		EPSGrowth:     18.5,
		DebtEquity:    1.6,
		ProfitMargin:  26.1,
		DividendYield: math.NaN(),
		ESGScore:      76,
		Beta:          1.12,
	}
	engine := scoring.NewEngine(scoring.DefaultMetrics()...)
	return engine.Evaluate(m, scoring.DefaultWeights())
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	ev := sampleEvaluation()
	if err := r.Render(&buf, "AAPL", ev); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"AAPL: Score",
		ev.Verdict.Label,
		"P/E ratio",
		"30.2",
		"Beta",
		"Missing (scored 0): Dividend yield",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Weight total") {
		t.Error("weight total note should only appear when weights do not sum to 100")
	}
}

func TestTerminalRenderer_WeightTotalNote(t *testing.T) {
	engine := scoring.NewEngine(scoring.DefaultMetrics()...)
	ev := engine.Evaluate(scoring.EmptyMetrics(), scoring.Weights{scoring.KeyPE: 40})

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, "", ev); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Weight total 40") {
		t.Errorf("expected weight total note, got:\n%s", buf.String())
	}
}

func TestNotesRenderer(t *testing.T) {
	ev := sampleEvaluation()
	notes := surface.BuildNotes("AAPL", ev)

	for _, want := range []string{
		"Ticker: AAPL",
		"Overall Score: ",
		"- P/E ratio: 30.2 | Subscore: 49",
		"- Dividend yield: ? | Subscore: 0",
		"Next Steps:",
	} {
		if !strings.Contains(notes, want) {
			t.Errorf("expected %q in notes:\n%s", want, notes)
		}
	}

	if !strings.Contains(surface.BuildNotes("", ev), "Ticker: (unspecified)") {
		t.Error("expected placeholder ticker")
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&buf, "AAPL", sampleEvaluation()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded struct {
		Ticker    string `json:"ticker"`
		Score     int    `json:"score"`
		Breakdown []struct {
			Key string   `json:"key"`
			Raw *float64 `json:"raw"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Ticker != "AAPL" || len(decoded.Breakdown) != 7 {
		t.Errorf("unexpected output: %+v", decoded)
	}
	if decoded.Breakdown[4].Raw != nil {
		t.Errorf("absent dividend yield should encode as null")
	}
}

func TestForFormat(t *testing.T) {
	for _, f := range []string{"", "text", "json", "notes"} {
		if _, err := surface.ForFormat(f); err != nil {
			t.Errorf("ForFormat(%q): %v", f, err)
		}
	}
	if _, err := surface.ForFormat("html"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
