package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsTask(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan struct{})
	if !p.Submit(context.Background(), "task", func(ctx context.Context) { close(done) }) {
		t.Fatal("Submit rejected on idle pool")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestSubmitBackPressure(t *testing.T) {
	p := New(1)
	release := make(chan struct{})
	started := make(chan struct{})

	if !p.Submit(context.Background(), "blocking", func(ctx context.Context) {
		close(started)
		<-release
	}) {
		t.Fatal("first Submit rejected")
	}
	<-started
	// Worker busy; one slot in the queue remains.
	if !p.Submit(context.Background(), "queued", func(ctx context.Context) {}) {
		t.Fatal("second Submit should fill the queue slot")
	}
	if p.Submit(context.Background(), "dropped", func(ctx context.Context) {}) {
		t.Fatal("third Submit should be dropped")
	}
	close(release)
	p.Close()
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	p := New(1)
	defer p.Close()

	p.Submit(context.Background(), "panics", func(ctx context.Context) { panic("boom") })
	var ran atomic.Bool
	done := make(chan struct{})
	deadline := time.Now().Add(2 * time.Second)
	for !p.Submit(context.Background(), "after", func(ctx context.Context) { ran.Store(true); close(done) }) {
		if time.Now().After(deadline) {
			t.Fatal("pool never accepted follow-up task")
		}
		time.Sleep(5 * time.Millisecond)
	}
	<-done
	if !ran.Load() {
		t.Fatal("follow-up task did not run")
	}
}

func TestCancelledContextSkipsTask(t *testing.T) {
	p := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Bool
	p.Submit(ctx, "cancelled", func(ctx context.Context) { ran.Store(true) })
	p.Close()
	if ran.Load() {
		t.Fatal("task ran with cancelled context")
	}
}
