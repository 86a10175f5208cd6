// Package wire defines the newline-delimited JSON envelope exchanged with
// the supervisor child process. Outbound Request values carry proto/op;
// inbound Envelope values carry an event name plus whichever optional
// fields that event uses.
package wire

import "encoding/json"

// ProtoVersion identifies the wire protocol spoken with the supervisor.
const ProtoVersion = "poc.tui@1"

// ClientInfo identifies this TUI build in the hello request.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Request is an outbound message sent to the supervisor's stdin.
type Request struct {
	Proto   string      `json:"proto"`
	Op      string      `json:"op"`
	Client  *ClientInfo `json:"client,omitempty"`
	JobID   string      `json:"jobId,omitempty"`
	Title   string      `json:"title,omitempty"`
	Argv    []string    `json:"argv,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	Credits int         `json:"credits,omitempty"`
}

func newRequest(op string) Request {
	return Request{Proto: ProtoVersion, Op: op}
}

// Hello builds the initial handshake request.
func Hello(name, version string) Request {
	r := newRequest("hello")
	r.Client = &ClientInfo{Name: name, Version: version}
	return r
}

// JobRun builds a job:run request.
func JobRun(jobID, title string, argv []string) Request {
	r := newRequest("job:run")
	r.JobID = jobID
	r.Title = title
	r.Argv = argv
	return r
}

// JobCancel builds a job:cancel request.
func JobCancel(jobID, reason string) Request {
	r := newRequest("job:cancel")
	r.JobID = jobID
	r.Reason = reason
	return r
}

// Shutdown builds a shutdown request.
func Shutdown(reason string) Request {
	r := newRequest("shutdown")
	r.Reason = reason
	return r
}

// FlowCredit builds a flow:credit request.
func FlowCredit(credits int) Request {
	r := newRequest("flow:credit")
	r.Credits = credits
	return r
}

// FlowInfo is the optional "flow" field on runtime:metrics events.
type FlowInfo struct {
	QueueDepth *float64 `json:"queueDepth,omitempty"`
}

// Envelope is the generic shape of an inbound supervisor event. Fields not
// relevant to a given event's "event" name are left zero.
type Envelope struct {
	Event      string    `json:"event"`
	RunID      string    `json:"runId,omitempty"`
	JobID      string    `json:"jobId,omitempty"`
	TaskID     string    `json:"taskId,omitempty"`
	Status     string    `json:"status,omitempty"`
	Message    string    `json:"message,omitempty"`
	Flow       *FlowInfo `json:"flow,omitempty"`
	ChunkID    string    `json:"chunkId,omitempty"`
	ChunkIndex int       `json:"chunkIndex,omitempty"`
	ChunkCount int       `json:"chunkCount,omitempty"`
	Chunk      string    `json:"chunk,omitempty"`
}

// ParseEnvelope decodes the generic envelope fields out of a raw event.
func ParseEnvelope(raw json.RawMessage) (Envelope, error) {
	var e Envelope
	err := json.Unmarshal(raw, &e)
	return e, err
}
