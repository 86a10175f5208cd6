// Package protocol maps supervisor wire events onto model mutations (C4).
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/agent-racer/supervisor-tui/internal/chunk"
	"github.com/agent-racer/supervisor-tui/internal/model"
	"github.com/agent-racer/supervisor-tui/internal/wire"
)

// ewmaAlpha is the smoothing coefficient applied to new samples.
const ewmaAlpha = 0.15

func ewma(current, sample float64) float64 {
	if current <= 0 {
		return sample
	}
	return (1-ewmaAlpha)*current + ewmaAlpha*sample
}

// Apply decodes one raw supervisor event and applies it to m, reassembling
// event:chunk frames through r as needed. queueDepth is the ingestion
// channel depth at the time this event was received; pollIntervalMs is the
// configured input-poll interval. Returns the number of model-visible
// events this call resulted in applying (0 or 1; reassembly collapses N
// chunk frames into at most one applied event, matching chunk atomicity).
func Apply(m *model.Model, r *chunk.Reassembler, raw json.RawMessage, queueDepth int, pollIntervalMs float64) int {
	return applyEvent(m, r, raw, queueDepth, pollIntervalMs)
}

func applyEvent(m *model.Model, r *chunk.Reassembler, raw json.RawMessage, queueDepth int, pollIntervalMs float64) int {
	env, err := wire.ParseEnvelope(raw)
	if err != nil {
		return 0
	}
	if env.RunID != "" {
		m.RunID = env.RunID
	}

	if env.Event == "event:chunk" {
		res := r.Ingest(env.ChunkID, env.ChunkIndex, env.ChunkCount, env.Chunk)
		switch res.Outcome {
		case chunk.Dropped:
			m.Telemetry.DroppedChunks++
			if res.LogLine != "" {
				m.PushLog(res.LogLine)
				m.Dirty = true
			}
			return 0
		case chunk.Pending:
			return 0
		case chunk.Complete:
			inner, innerErr := wire.ParseEnvelope(res.Event)
			if innerErr == nil && inner.Event == "event:chunk" {
				// Reassembled events must not themselves be chunk frames.
				m.Telemetry.DroppedChunks++
				return 0
			}
			m.Telemetry.ChunkReassembled++
			return applyEvent(m, r, res.Event, queueDepth, pollIntervalMs)
		}
	}

	dispatch(m, env, raw)

	m.Telemetry.ProcessedEvents++
	m.Telemetry.QueueDepthEWMA = ewma(m.Telemetry.QueueDepthEWMA, float64(queueDepth))
	m.Telemetry.EventLagMsEWMA = ewma(m.Telemetry.EventLagMsEWMA, float64(queueDepth)*pollIntervalMs)
	m.Dirty = true
	return 1
}

func dispatch(m *model.Model, env wire.Envelope, raw json.RawMessage) {
	switch env.Event {
	case "job:start", "job:spawn":
		m.UpdateJobStatus(env.JobID, "running")

	case "job:end":
		status := env.Status
		if status == "" {
			status = "unknown"
		}
		m.UpdateJobStatus(env.JobID, status)

	case "task:start", "task:progress":
		status := env.Status
		if status == "" {
			status = "running"
		}
		m.UpdateTaskStatus(env.JobID, env.TaskID, status, env.Message)

	case "task:end":
		status := env.Status
		if status == "" {
			status = "done"
		}
		m.UpdateTaskStatus(env.JobID, env.TaskID, status, env.Message)

	case "runtime:metrics":
		if env.Flow != nil && env.Flow.QueueDepth != nil {
			m.Telemetry.QueueDepthEWMA = ewma(m.Telemetry.QueueDepthEWMA, *env.Flow.QueueDepth)
		}

	case "log":
		msg := env.Message
		if msg == "" {
			msg = "(empty log)"
		}
		m.PushLog(msg)

	default:
		m.PushLog(fmt.Sprintf("event=%s %s", env.Event, string(raw)))
	}
}
