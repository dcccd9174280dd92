package telemetry

import (
	"testing"
	"time"
)

func TestObservation_Projections(t *testing.T) {
	at := time.Date(2026, 8, 26, 12, 0, 0, 123456789, time.UTC)

	tests := []struct {
		name string
		obs  Observation[string]
		want Update
	}{
		{
			name: "count",
			obs:  Observed("requests", 17, at),
			want: Update{Kind: ObservedCount, Count: 17, Timestamp: at},
		},
		{
			name: "zero count",
			obs:  Observed("requests", 0, at),
			want: Update{Kind: ObservedCount, Count: 0, Timestamp: at},
		},
		{
			name: "one",
			obs:  ObservedOne("requests", at),
			want: Update{Kind: ObservedSingle, Timestamp: at},
		},
		{
			name: "one value",
			obs:  ObservedOneValue("requests", 12.5, at),
			want: Update{Kind: ObservedSingleValue, Value: 12.5, Timestamp: at},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, update := tt.obs.Split()
			if label != "requests" {
				t.Errorf("Split label = %q, want %q", label, "requests")
			}
			if update != tt.want {
				t.Errorf("Split update = %+v, want %+v", update, tt.want)
			}

			projected := tt.obs.Project()
			if projected != update {
				t.Errorf("Project = %+v differs from Split = %+v", projected, update)
			}
			if tt.obs.Label != "requests" {
				t.Errorf("Project consumed the label: %q", tt.obs.Label)
			}
		})
	}
}

func TestObservation_TimestampExact(t *testing.T) {
	at := time.Now().Add(-37 * time.Millisecond)
	obs := ObservedOneValue(1, 0.000001, at)
	_, update := obs.Split()
	if !update.Timestamp.Equal(at) {
		t.Fatalf("timestamp changed: %v != %v", update.Timestamp, at)
	}
	if update.Value != 0.000001 {
		t.Fatalf("value changed: %v", update.Value)
	}
}
