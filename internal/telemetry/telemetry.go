// Package telemetry periodically snapshots EWMA and counter state to a
// line-delimited JSON journal (C8).
package telemetry

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

// SchemaVersion is the journal line schema version.
const SchemaVersion = 1

// Snapshot is one line of the telemetry journal.
type Snapshot struct {
	SchemaVersion    int     `json:"schemaVersion"`
	RunID            string  `json:"runId"`
	TsMs             int64   `json:"ts_ms"`
	EventLagMsEWMA   float64 `json:"eventLagMsEwma"`
	RenderMsEWMA     float64 `json:"renderMsEwma"`
	QueueDepthEWMA   float64 `json:"queueDepthEwma"`
	ProcessedEvents  uint64  `json:"processedEvents"`
	ChunkReassembled uint64  `json:"chunkReassembled"`
	DroppedChunks    uint64  `json:"droppedChunks"`
}

// Emitter appends one Snapshot line per Emit call. A nil writer (created
// when the journal path couldn't be opened) silently disables emission,
// per the spec's "missing/unopenable journal silently disables emission".
type Emitter struct {
	file *os.File
	w    *bufio.Writer
}

// Open creates an emitter appending to path. If the path is empty or the
// file can't be opened, emission is silently disabled — Emit becomes a
// no-op and always returns nil.
func Open(path string) *Emitter {
	if path == "" {
		return &Emitter{}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &Emitter{}
	}
	return &Emitter{file: f, w: bufio.NewWriter(f)}
}

// Close flushes and closes the underlying file, if any.
func (e *Emitter) Close() error {
	if e.file == nil {
		return nil
	}
	if err := e.w.Flush(); err != nil {
		return err
	}
	return e.file.Close()
}

// Emit writes one telemetry line for m at time tsMs (caller-supplied, since
// this package never calls time.Now() itself).
func (e *Emitter) Emit(m *model.Model, tsMs int64) error {
	if e.file == nil {
		return nil
	}
	snap := Snapshot{
		SchemaVersion:    SchemaVersion,
		RunID:            m.RunID,
		TsMs:             tsMs,
		EventLagMsEWMA:   m.Telemetry.EventLagMsEWMA,
		RenderMsEWMA:     m.Telemetry.RenderMsEWMA,
		QueueDepthEWMA:   m.Telemetry.QueueDepthEWMA,
		ProcessedEvents:  m.Telemetry.ProcessedEvents,
		ChunkReassembled: m.Telemetry.ChunkReassembled,
		DroppedChunks:    m.Telemetry.DroppedChunks,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return err
	}
	return e.w.Flush()
}
