package formatter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mvdberg/alertlog/core"
)

func sampleRecord() *core.Record {
	return &core.Record{
		Time:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Level:   core.WarnLevel,
		Message: "no listings found",
		Fields: []core.Field{
			core.Bool("skip_tg", true),
			core.String("search", "amsterdam"),
			core.Int("attempt", 3),
		},
	}
}

func TestTextFormat(t *testing.T) {
	f := NewText(Config{})
	out, err := f.Format(sampleRecord())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	s := string(out)
	for _, want := range []string{"[WARN]", "no listings found", "skip_tg=true", "search=amsterdam", "attempt=3"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in output, got: %s", want, s)
		}
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("text output must be newline-terminated")
	}
}

func TestTextCaller(t *testing.T) {
	f := NewText(Config{IncludeCaller: true})
	r := sampleRecord()
	r.Caller = core.CallerInfo{ShortFile: "watch.go", Line: 17, Defined: true}

	out, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), "[watch.go:17]") {
		t.Errorf("expected caller tag, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON(Config{})
	out, err := f.Format(sampleRecord())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", decoded["level"])
	}
	if decoded["message"] != "no listings found" {
		t.Errorf("message = %v", decoded["message"])
	}
	if decoded["skip_tg"] != true {
		t.Errorf("skip_tg = %v, want true", decoded["skip_tg"])
	}
	if decoded["attempt"] != float64(3) {
		t.Errorf("attempt = %v, want 3", decoded["attempt"])
	}
}

func TestJSONEscaping(t *testing.T) {
	f := NewJSON(Config{})
	r := sampleRecord()
	r.Message = "quote \" backslash \\ newline \n tab \t"

	out, err := f.Format(r)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("escaped output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["message"] != r.Message {
		t.Errorf("message round-trip mismatch: %v", decoded["message"])
	}
}
