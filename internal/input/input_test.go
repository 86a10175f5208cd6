package input

import (
	"testing"
	"time"

	"github.com/agent-racer/supervisor-tui/internal/model"
)

func TestEnqueueDebouncesIdenticalTokens(t *testing.T) {
	d := NewDispatcher()
	base := time.Now()

	if !d.Enqueue("j", base) {
		t.Fatal("first enqueue should succeed")
	}
	if d.Enqueue("j", base.Add(10*time.Millisecond)) {
		t.Error("identical token within debounce window should be dropped")
	}
	if !d.Enqueue("j", base.Add(41*time.Millisecond)) {
		t.Error("identical token past debounce window should enqueue")
	}
	if d.QueueLen() != 2 {
		t.Errorf("QueueLen() = %d, want 2", d.QueueLen())
	}
}

func TestEnqueueUnmappedKeyIgnored(t *testing.T) {
	d := NewDispatcher()
	if d.Enqueue("z", time.Now()) {
		t.Error("unmapped key should not enqueue")
	}
}

func TestDispatchRateLimit(t *testing.T) {
	d := NewDispatcher()
	base := time.Now()
	d.Enqueue("j", base)
	d.Enqueue("k", base.Add(100*time.Millisecond))

	ev, ok := d.Dispatch(base.Add(200 * time.Millisecond))
	if !ok || ev.Command != CmdLogsUp {
		t.Fatalf("first Dispatch = %+v, %v, want CmdLogsUp, true", ev, ok)
	}
	if _, ok := d.Dispatch(base.Add(210 * time.Millisecond)); ok {
		t.Error("second Dispatch within 25ms should be rate-limited")
	}
	ev, ok = d.Dispatch(base.Add(226 * time.Millisecond))
	if !ok || ev.Command != CmdLogsDown {
		t.Fatalf("third Dispatch = %+v, %v, want CmdLogsDown, true", ev, ok)
	}
}

func TestActQuitSendsShutdown(t *testing.T) {
	m := model.New()
	req, quit := Act(CmdQuit, m, &JobAllocator{})
	if !quit {
		t.Error("expected quit=true")
	}
	if req == nil || req.Op != "shutdown" || req.Reason != "user_exit" {
		t.Errorf("req = %+v, want shutdown/user_exit", req)
	}
}

func TestActCancelSelectedNoopWithoutSelection(t *testing.T) {
	m := model.New()
	req, quit := Act(CmdCancelSelected, m, &JobAllocator{})
	if req != nil || quit {
		t.Errorf("req = %+v, quit = %v, want nil, false", req, quit)
	}
}

func TestActRunJobAllocatesSequentialIDs(t *testing.T) {
	m := model.New()
	jobs := &JobAllocator{}
	req1, _ := Act(CmdRunJob, m, jobs)
	req2, _ := Act(CmdRunJob, m, jobs)
	if req1.JobID != "job-1" || req2.JobID != "job-2" {
		t.Errorf("job ids = %q, %q, want job-1, job-2", req1.JobID, req2.JobID)
	}
}
