package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pohcalc/pohcalc/pkg/table"
)

func runJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if err := run(append([]string{"-format", "json"}, args...), &stdout, &stderr); err != nil {
		t.Fatalf("run(%v): %v\nstderr: %s", args, err, stderr.String())
	}
	var out map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	return out
}

func near(a any, b float64) bool {
	f, ok := a.(float64)
	return ok && math.Abs(f-b) < 1e-6
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-version"}, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "pohcalc ") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestTakeoffCommand(t *testing.T) {
	out := runJSON(t, "takeoff", "-weight", "2550", "-temp", "0", "-altitude", "0")
	if !near(out["ground_roll_ft"], 860) {
		t.Errorf("ground roll = %v, expected 860", out["ground_roll_ft"])
	}
	if !near(out["liftoff_speed_kias"], 51) {
		t.Errorf("liftoff speed = %v, expected 51", out["liftoff_speed_kias"])
	}

	out = runJSON(t, "takeoff", "-weight", "2550", "-temp", "0", "-grass")
	if !near(out["ground_roll_ft"], 989) {
		t.Errorf("grass ground roll = %v, expected 989", out["ground_roll_ft"])
	}

	out = runJSON(t, "takeoff", "-weight", "2550", "-temp", "0", "-runway", "90", "-wind-dir", "90", "-wind-speed", "9")
	if !near(out["ground_roll_ft"], 774) {
		t.Errorf("headwind ground roll = %v, expected 774", out["ground_roll_ft"])
	}
}

func TestTakeoffCommandOutOfRange(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"takeoff", "-weight", "3000"}, &stdout, &stderr)
	if !errors.Is(err, table.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestTakeoffCommandText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"takeoff", "-temp", "0", "-grass"}, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Ground roll:") || !strings.Contains(stdout.String(), "989 ft") {
		t.Errorf("unexpected text output:\n%s", stdout.String())
	}
}

func TestClimbCommand(t *testing.T) {
	out := runJSON(t, "climb", "-from", "2000", "-to", "5000", "-rate-start", "700", "-rate-end", "500", "-ias", "79", "-trace")
	dist, _ := out["total_distance_nm"].(float64)
	if dist <= 0 {
		t.Fatalf("total distance = %v, expected positive", out["total_distance_nm"])
	}
	if !near(out["min_gradient_ft_per_nm"], 3000/dist) {
		t.Errorf("gradient = %v, expected %v", out["min_gradient_ft_per_nm"], 3000/dist)
	}
	if segs, _ := out["segments"].([]any); len(segs) != 6 {
		t.Errorf("got %d segments, expected 6", len(segs))
	}
}

func TestClimbTableCommand(t *testing.T) {
	out := runJSON(t, "climb-table", "-from", "0", "-to", "4000", "-temp", "15")
	tfd, _ := out["to_climb"].(map[string]any)
	if !near(tfd["minutes"], 6) || !near(tfd["gallons"], 1.5) || !near(tfd["nautical_miles"], 8) {
		t.Errorf("to_climb = %v, expected 6 min, 1.5 gal, 8 nm", tfd)
	}
	if !near(out["climb_speed_kias"], 74) {
		t.Errorf("climb speed = %v, expected 74", out["climb_speed_kias"])
	}
	top, _ := out["top_schedule"].(map[string]any)
	if !near(top["standard_temperature_c"], 7) || !near(top["rate_of_climb_fpm"], 600) {
		t.Errorf("top_schedule = %v, expected 7 °C and 600 ft/min", top)
	}
}

func TestCruiseCommand(t *testing.T) {
	out := runJSON(t, "cruise", "-altitude", "2000", "-temp", "15", "-rpm", "2400", "-mp", "22")
	if !near(out["true_airspeed_kt"], 118) || !near(out["fuel_flow_gph"], 9.6) {
		t.Errorf("cruise = %v, expected 118 kt at 9.6 GPH", out)
	}
	if out["source"] != "table" {
		t.Errorf("source = %v, expected table", out["source"])
	}

	out = runJSON(t, "cruise", "-altitude", "2000", "-temp", "15", "-rpm", "2400")
	if out["source"] != "table-no-mp" {
		t.Errorf("source without -mp = %v, expected table-no-mp", out["source"])
	}
}

func TestCruiseCommandReferenceProfile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.yaml")
	body := `aircraft: C172S
cruise:
  reference: {altitude: 4000, temperature: 7, manifold_pressure: 22, rpm: 2400, true_airspeed: 118, fuel_flow: 8.4}
`
	if err := os.WriteFile(profile, []byte(body), 0o600); err != nil {
		t.Fatalf("writing profile: %v", err)
	}

	out := runJSON(t, "-config", profile, "cruise", "-altitude", "2000", "-temp", "15", "-rpm", "2400", "-mp", "22")
	if out["source"] != "reference" || !near(out["true_airspeed_kt"], 118) || !near(out["fuel_flow_gph"], 8.4) {
		t.Errorf("reference cruise = %v", out)
	}

	out = runJSON(t, "-config", profile, "cruise", "-table", "-altitude", "2000", "-temp", "15", "-rpm", "2400", "-mp", "22")
	if out["source"] != "table" {
		t.Errorf("-table source = %v, expected table", out["source"])
	}
}

func TestEnduranceCommand(t *testing.T) {
	out := runJSON(t, "endurance", "-fuel", "40", "-flow", "8", "-reserve-hr", "0.5",
		"-altitude", "2000", "-temp", "15", "-rpm", "2400", "-mp", "22")
	if !near(out["endurance_hr"], 4.5) {
		t.Errorf("endurance = %v, expected 4.5", out["endurance_hr"])
	}
	if !near(out["range_nm"], 4.5*118) {
		t.Errorf("range = %v, expected %v", out["range_nm"], 4.5*118)
	}
}

func TestMsgPackOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-format", "msgpack", "takeoff", "-temp", "0"}, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]any
	if err := msgpack.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("output is not MessagePack: %v", err)
	}
	if !near(out["ground_roll_ft"], 860) {
		t.Errorf("ground roll = %v, expected 860", out["ground_roll_ft"])
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no command", nil, "no command"},
		{"unknown command", []string{"landing"}, "unknown command"},
		{"bad format", []string{"-format", "xml", "takeoff"}, "unknown output format"},
		{"missing profile", []string{"-config", "/nonexistent/profile.yaml", "takeoff"}, "config"},
		{"bad command flag", []string{"takeoff", "-weight", "heavy"}, "invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("run(%v) error = %v, expected it to mention %q", tt.args, err, tt.wantErr)
			}
		})
	}
}
