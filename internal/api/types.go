package api

import (
	"fmt"
	"math"
	"strconv"
)

// LivePredictionsFile is the artifact name the server writes live session
// results to. Download requests for live results always use this name.
const LivePredictionsFile = "live_predictions.csv"

// Summary holds per-label flow counts for a capture.
type Summary struct {
	Benign  int `json:"BENIGN"`
	Anomaly int `json:"ANOMALY"`
	Attack  int `json:"ATTACK"`
}

// Total returns the number of flows covered by the summary. The server's
// top-level flow count can disagree with this during a capture window, so
// displays show both rather than trusting either.
func (s Summary) Total() int {
	return s.Benign + s.Anomaly + s.Attack
}

// LiveStatus is a snapshot of the live capture session. Fields the server
// omits decode to their zero values, so a minimal {"running": false} payload
// is still usable.
type LiveStatus struct {
	Running     bool           `json:"running"`
	Flows       int            `json:"flows"`
	Summary     Summary        `json:"summary"`
	AttackTypes map[string]int `json:"attack_types"`
	LastCapture string         `json:"last_capture"`
	AllFlows    []FlowRecord   `json:"all_flows"`
}

// Health is the server's liveness response.
type Health struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

// PredictResult is the classification report for an uploaded capture file.
type PredictResult struct {
	Status      string         `json:"status"`
	Filename    string         `json:"filename"`
	FileType    string         `json:"file_type"`
	FileSize    int64          `json:"file_size_bytes"`
	TotalFlows  int            `json:"total_flows"`
	Summary     Summary        `json:"summary"`
	AttackTypes map[string]int `json:"attack_types"`
	DownloadCSV string         `json:"download_csv"`
	Preview     []FlowRecord   `json:"data_preview"`
	AllFlows    []FlowRecord   `json:"all_flows"`
}

// FlowRecord is one classified flow. The column set depends on the server's
// feature extractor, so records stay schemaless and lookups go through
// helpers that try the common spellings.
type FlowRecord map[string]any

// Field returns the first present column as a display string, or "" when
// none match. JSON numbers render without a mantissa when they are whole.
func (f FlowRecord) Field(names ...string) string {
	for _, name := range names {
		v, ok := f[name]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			if t == math.Trunc(t) && math.Abs(t) < 1e15 {
				return strconv.FormatInt(int64(t), 10)
			}
			return strconv.FormatFloat(t, 'f', 2, 64)
		case bool:
			return strconv.FormatBool(t)
		default:
			return fmt.Sprintf("%v", t)
		}
	}
	return ""
}

// Label returns the classification label for the flow.
func (f FlowRecord) Label() string {
	return f.Field("Label", "label")
}

// AttackType returns the attack class for flows labeled ATTACK.
func (f FlowRecord) AttackType() string {
	return f.Field("Attack_Type", "attack_type", "Attack Type")
}

// Source returns the flow's source endpoint.
func (f FlowRecord) Source() string {
	ip := f.Field("Src IP", "Source IP", "src_ip")
	port := f.Field("Src Port", "Source Port", "src_port")
	return joinEndpoint(ip, port)
}

// Destination returns the flow's destination endpoint.
func (f FlowRecord) Destination() string {
	ip := f.Field("Dst IP", "Destination IP", "dst_ip")
	port := f.Field("Dst Port", "Destination Port", "dst_port")
	return joinEndpoint(ip, port)
}

// Protocol returns the flow's protocol column.
func (f FlowRecord) Protocol() string {
	return f.Field("Protocol", "protocol")
}

func joinEndpoint(ip, port string) string {
	if ip == "" {
		return port
	}
	if port == "" {
		return ip
	}
	return ip + ":" + port
}
