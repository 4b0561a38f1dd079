package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"zone-less", `"2030-01-01T10:00:00"`, time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"zone-less with millis", `"2030-01-01T10:00:00.250"`, time.Date(2030, 1, 1, 10, 0, 0, 250_000_000, time.UTC), false},
		{"utc offset", `"2030-01-01T10:00:00Z"`, time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"explicit offset", `"2030-01-01T12:00:00+02:00"`, time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"date only", `"2030-01-01"`, time.Time{}, true},
		{"number", `1735725600`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !ts.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ts.Time)
			}
		})
	}
}

func TestTimestamp_Marshal(t *testing.T) {
	tests := []struct {
		name  string
		input Timestamp
		want  string
	}{
		{"whole seconds", NewTimestamp(time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)), `"2030-01-01T10:00:00"`},
		{"fraction kept", NewTimestamp(time.Date(2030, 1, 1, 10, 0, 0, 500_000_000, time.UTC)), `"2030-01-01T10:00:00.5"`},
		{"converted to utc", NewTimestamp(time.Date(2030, 1, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*3600))), `"2030-01-01T10:00:00"`},
		{"zero", Timestamp{}, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestBookingView_WritesZoneLessTimes(t *testing.T) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	view := BookingView{ID: 1, Start: NewTimestamp(start), End: NewTimestamp(start.Add(time.Hour)), Status: StatusWaiting}

	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if fields["start"] != "2030-01-01T10:00:00" || fields["end"] != "2030-01-01T11:00:00" {
		t.Errorf("unexpected timestamps in %s", raw)
	}
}
