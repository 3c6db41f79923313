package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowRecordField(t *testing.T) {
	rec := FlowRecord{
		"Src IP":        "192.168.1.10",
		"Src Port":      float64(51234),
		"Flow Duration": 1234.5678,
		"Fwd PSH Flags": float64(0),
		"Is Attack":     true,
		"Timestamp":     nil,
	}

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{
			name:  "string value",
			names: []string{"Src IP"},
			want:  "192.168.1.10",
		},
		{
			name:  "whole number renders without decimals",
			names: []string{"Src Port"},
			want:  "51234",
		},
		{
			name:  "fractional number keeps two decimals",
			names: []string{"Flow Duration"},
			want:  "1234.57",
		},
		{
			name:  "zero is a value, not a miss",
			names: []string{"Fwd PSH Flags"},
			want:  "0",
		},
		{
			name:  "bool value",
			names: []string{"Is Attack"},
			want:  "true",
		},
		{
			name:  "null column falls through to next name",
			names: []string{"Timestamp", "Src IP"},
			want:  "192.168.1.10",
		},
		{
			name:  "missing column",
			names: []string{"Dst IP"},
			want:  "",
		},
		{
			name:  "first present name wins",
			names: []string{"Missing", "Src IP", "Src Port"},
			want:  "192.168.1.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rec.Field(tt.names...))
		})
	}
}

func TestFlowRecordHelpers(t *testing.T) {
	tests := []struct {
		name       string
		rec        FlowRecord
		label      string
		attackType string
		source     string
		dest       string
	}{
		{
			name: "capitalized columns",
			rec: FlowRecord{
				"Src IP": "10.0.0.2", "Src Port": float64(443),
				"Dst IP": "10.0.0.9", "Dst Port": float64(51000),
				"Label": "ATTACK", "Attack_Type": "DDoS",
			},
			label:      "ATTACK",
			attackType: "DDoS",
			source:     "10.0.0.2:443",
			dest:       "10.0.0.9:51000",
		},
		{
			name: "snake_case columns",
			rec: FlowRecord{
				"src_ip": "172.16.0.1", "src_port": float64(22),
				"dst_ip": "172.16.0.2", "dst_port": float64(40001),
				"label": "BENIGN",
			},
			label:  "BENIGN",
			source: "172.16.0.1:22",
			dest:   "172.16.0.2:40001",
		},
		{
			name: "ip without port",
			rec: FlowRecord{
				"Src IP": "10.0.0.2",
			},
			source: "10.0.0.2",
		},
		{
			name: "empty record",
			rec:  FlowRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.rec.Label())
			assert.Equal(t, tt.attackType, tt.rec.AttackType())
			assert.Equal(t, tt.source, tt.rec.Source())
			assert.Equal(t, tt.dest, tt.rec.Destination())
		})
	}
}

func TestSummaryTotal(t *testing.T) {
	assert.Equal(t, 0, Summary{}.Total())
	assert.Equal(t, 12, Summary{Benign: 8, Anomaly: 1, Attack: 3}.Total())
}
