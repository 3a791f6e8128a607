package responseformat

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type sample struct {
	GroundRoll float64 `json:"ground_roll_ft"`
	Source     string  `json:"source"`
}

func (s sample) String() string { return "ground roll " + s.Source + "\n" }

type plain struct {
	Minutes float64 `json:"minutes"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"", Text, false},
		{"text", Text, false},
		{"json", JSON, false},
		{"msgpack", MsgPack, false},
		{"xml", Text, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestWriteResponseJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(JSON).WriteResponse(&buf, sample{GroundRoll: 860, Source: "table"}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["ground_roll_ft"] != 860.0 || got["source"] != "table" {
		t.Errorf("unexpected JSON %v", got)
	}
}

func TestWriteResponseMsgPackUsesJSONTags(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(MsgPack).WriteResponse(&buf, sample{GroundRoll: 989, Source: "table"}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}

	var got map[string]any
	if err := msgpack.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not MessagePack: %v", err)
	}
	if got["ground_roll_ft"] != 989.0 {
		t.Errorf("ground_roll_ft = %v, expected 989", got["ground_roll_ft"])
	}
	if _, ok := got["GroundRoll"]; ok {
		t.Error("MessagePack output used the Go field name instead of the json tag")
	}
}

func TestWriteResponseText(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(Text).WriteResponse(&buf, sample{Source: "table"}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	if buf.String() != "ground roll table\n" {
		t.Errorf("text output = %q", buf.String())
	}

	buf.Reset()
	if err := NewFormatter(Text).WriteResponse(&buf, plain{Minutes: 6}); err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	if buf.String() != "{Minutes:6}\n" {
		t.Errorf("text output without String method = %q", buf.String())
	}
}
