package core

import (
	"testing"
	"time"
)

func TestLevelOrdering(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, CriticalLevel}
	for i := 1; i < len(levels); i++ {
		if !(levels[i-1] < levels[i]) {
			t.Errorf("expected %v < %v", levels[i-1], levels[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"Warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"critical", CriticalLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRecordBool(t *testing.T) {
	r := &Record{
		Fields: []Field{
			Bool("to_tg", true),
			String("source", "funda"),
		},
	}

	if !r.Bool("to_tg", false) {
		t.Error("expected to_tg=true")
	}
	// Absent attribute falls back to the supplied default.
	if r.Bool("skip_tg", false) {
		t.Error("expected default false for absent skip_tg")
	}
	if !r.Bool("skip_tg", true) {
		t.Error("expected default true for absent skip_tg")
	}
	// Non-bool field with a matching key does not satisfy the lookup.
	if r.Bool("source", false) {
		t.Error("string field must not be read as a bool attribute")
	}
}

func TestRecordPoolReset(t *testing.T) {
	r := GetRecord()
	r.Level = ErrorLevel
	r.Message = "boom"
	r.Fields = append(r.Fields, Bool("to_tg", true))
	r.Caller = CallerInfo{Line: 42, Defined: true}
	PutRecord(r)

	r2 := GetRecord()
	if r2.Message != "" || len(r2.Fields) != 0 || r2.Caller.Defined {
		t.Errorf("pooled record not reset: %+v", r2)
	}
	if r2.Time.IsZero() {
		t.Error("GetRecord should stamp the current time")
	}
	PutRecord(r2)
}

func TestFieldStringValue(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	cases := []struct {
		field Field
		want  string
	}{
		{String("k", "v"), "v"},
		{Int("k", 7), "7"},
		{Int64("k", -3), "-3"},
		{Float64("k", 1.5), "1.5"},
		{Bool("k", true), "true"},
		{Bool("k", false), "false"},
		{Duration("k", 2 * time.Second), "2s"},
		{Any("k", 12), "12"},
	}
	for _, c := range cases {
		if got := c.field.StringValue(); got != c.want {
			t.Errorf("StringValue() = %q, want %q", got, c.want)
		}
	}
	if got := Time("k", ts).StringValue(); got == "" {
		t.Error("time field should render")
	}
}
