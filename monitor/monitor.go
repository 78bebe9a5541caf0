// Package monitor implements the behavioral monitor: per-context
// counters, bounded ring buffers, and a terminal risk assessment. All
// state is guarded by a single mutex; assessment is a consistent
// snapshot of whatever updates have completed by the call instant.
package monitor

import (
	"sync"

	"github.com/ossguard/nodefw/access"
	"github.com/ossguard/nodefw/config"
)

// Risk is the four-valued terminal classification of a run.
type Risk int

const (
	RiskClean Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
)

func (r Risk) String() string {
	switch r {
	case RiskClean:
		return "clean"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ringSize is the bounded ring-buffer length.
const ringSize = 100

// NetworkEvent is one entry in the network ring buffer.
type NetworkEvent struct {
	TimestampUnixNano int64
	Target            string
	Method            string
	Allowed           bool
}

// FileWriteEvent is one entry in the file-write ring buffer.
type FileWriteEvent struct {
	TimestampUnixNano int64
	Target            string
	Allowed           bool
}

// SpawnRecord is one recorded command/process spawn.
type SpawnRecord struct {
	TimestampUnixNano int64
	Command           string
	Allowed           bool
}

// SuspiciousEvent is a recorded DENY/WARN observation kept for reporting.
type SuspiciousEvent struct {
	TimestampUnixNano int64
	Kind              string
	Target            string
	Decision          string
	Reason            string
	Severity          access.Severity
	Package           string
}

// Counters holds the plain per-kind tallies.
type Counters struct {
	FileReads           int
	FileWrites          int
	NetworkRequests     int
	ProcessSpawns       int
	SensitiveReads      int
	CredentialsDetected int
}

// Report is the immutable snapshot produced by Snapshot().
type Report struct {
	Risk                Risk
	ContributingFactors []string
	Counters            Counters
	NetworkRing         []NetworkEvent
	FileWriteRing       []FileWriteEvent
	Spawns              []SpawnRecord
	SuspiciousEvents    []SuspiciousEvent
}

// Monitor accumulates behavioral statistics for a single interception
// context. A Monitor must not be shared across contexts; each context
// (main process, worker isolate, child process) owns its own instance.
type Monitor struct {
	mu sync.Mutex

	counters Counters

	networkRing   []NetworkEvent
	fileWriteRing []FileWriteEvent
	spawns        []SpawnRecord

	suspicious []SuspiciousEvent

	cfg config.Behavioral
}

// New creates a Monitor bound to the behavioral thresholds in cfg.
func New(cfg config.Behavioral) *Monitor {
	return &Monitor{cfg: cfg}
}

// Record updates counters, rings, and the suspicious-event list for one
// completed (Request, Verdict) pair. Safe for concurrent use.
func (m *Monitor) Record(req access.Request, v access.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := req.Timestamp.UnixNano()
	allowed := v.Decision == access.Allow

	switch {
	case req.Kind == access.FSRead:
		m.counters.FileReads++
		if v.Decision == access.Deny && v.Reason == access.ReasonBlockedRead {
			m.counters.SensitiveReads++
		}
	case req.Kind == access.FSWrite || req.Kind == access.FSCreate:
		m.counters.FileWrites++
		m.pushFileWrite(FileWriteEvent{TimestampUnixNano: now, Target: req.Target, Allowed: allowed})
	case req.Kind.IsNetwork():
		m.counters.NetworkRequests++
		m.pushNetwork(NetworkEvent{TimestampUnixNano: now, Target: req.Target, Method: req.Kind.String(), Allowed: allowed})
		if v.Reason == access.ReasonCredentialPattern {
			m.counters.CredentialsDetected++
		}
	case req.Kind.IsCommand():
		m.counters.ProcessSpawns++
		m.pushSpawn(SpawnRecord{TimestampUnixNano: now, Command: req.Target, Allowed: allowed})
	}

	if v.Decision == access.Deny || v.Decision == access.Warn {
		m.suspicious = append(m.suspicious, SuspiciousEvent{
			TimestampUnixNano: now,
			Kind:              req.Kind.String(),
			Target:            req.Target,
			Decision:          v.Decision.String(),
			Reason:            string(v.Reason),
			Severity:          v.Severity,
			Package:           v.Observable.Package,
		})
	}
}

func (m *Monitor) pushNetwork(e NetworkEvent) {
	m.networkRing = append(m.networkRing, e)
	if len(m.networkRing) > ringSize {
		m.networkRing = m.networkRing[len(m.networkRing)-ringSize:]
	}
}

func (m *Monitor) pushFileWrite(e FileWriteEvent) {
	m.fileWriteRing = append(m.fileWriteRing, e)
	if len(m.fileWriteRing) > ringSize {
		m.fileWriteRing = m.fileWriteRing[len(m.fileWriteRing)-ringSize:]
	}
}

func (m *Monitor) pushSpawn(s SpawnRecord) {
	m.spawns = append(m.spawns, s)
	if len(m.spawns) > ringSize {
		m.spawns = m.spawns[len(m.spawns)-ringSize:]
	}
}

// Assess computes the terminal risk classification and contributing
// factors using a fixed ladder (high > medium > low > clean).
func (m *Monitor) Assess() (Risk, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.assessLocked()
}

// assessLocked is Assess's body, callable by other methods that already
// hold mu (e.g. Snapshot), to keep a snapshot's risk and event data
// mutually consistent under one critical section.
func (m *Monitor) assessLocked() (Risk, []string) {
	var factors []string
	highestDenySeverity := access.SeverityInfo
	mediumDenySeen := false
	anyDenySeen := false

	for _, e := range m.suspicious {
		if e.Decision != "DENY" {
			continue
		}
		anyDenySeen = true
		if e.Severity.AtLeast(highestDenySeverity) {
			highestDenySeverity = e.Severity
		}
		if e.Severity == access.SeverityMedium {
			mediumDenySeen = true
		}
	}

	if highestDenySeverity == access.SeverityCritical {
		factors = append(factors, "critical-severity denial recorded")
	}
	if m.counters.CredentialsDetected > 0 {
		factors = append(factors, "credential pattern detected in outgoing payload")
	}
	if m.counters.SensitiveReads > 0 {
		factors = append(factors, "sensitive path read attempted")
	}
	if m.counters.ProcessSpawns > m.cfg.MaxProcessSpawns {
		factors = append(factors, "process spawn count exceeded configured maximum")
	}

	if len(factors) > 0 {
		return RiskHigh, factors
	}

	if m.counters.FileReads > m.cfg.AlertThresholds.FileReads {
		factors = append(factors, "file read count crossed alert threshold")
	}
	if m.counters.NetworkRequests > m.cfg.AlertThresholds.NetworkRequests {
		factors = append(factors, "network request count crossed alert threshold")
	}
	if m.counters.ProcessSpawns > m.cfg.AlertThresholds.ProcessSpawns {
		factors = append(factors, "process spawn count crossed alert threshold")
	}
	if highestDenySeverity == access.SeverityHigh {
		factors = append(factors, "high-severity denial recorded")
	}

	if len(factors) > 0 {
		return RiskMedium, factors
	}

	if mediumDenySeen || (anyDenySeen && highestDenySeverity == access.SeverityMedium) {
		return RiskLow, []string{"medium-severity denial recorded"}
	}

	return RiskClean, nil
}

// Snapshot returns an immutable, independently-owned Report suitable for
// the Shutdown Reporter to serialize.
func (m *Monitor) Snapshot() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	risk, factors := m.assessLocked()

	return Report{
		Risk:                risk,
		ContributingFactors: factors,
		Counters:            m.counters,
		NetworkRing:         append([]NetworkEvent(nil), m.networkRing...),
		FileWriteRing:       append([]FileWriteEvent(nil), m.fileWriteRing...),
		Spawns:              append([]SpawnRecord(nil), m.spawns...),
		SuspiciousEvents:    topK(m.suspicious, 20),
	}
}

// topK returns up to k worst (highest severity, most recent) suspicious
// events.
func topK(events []SuspiciousEvent, k int) []SuspiciousEvent {
	sorted := append([]SuspiciousEvent(nil), events...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Severity > sorted[j-1].Severity; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
