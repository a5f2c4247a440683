package lifecycle_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/leadpipe/pkg/lifecycle"
)

func TestReadyTransitions(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Error("should not be ready before WaitForStartup")
	}

	lc.WaitForStartup()
	if !lc.Ready() {
		t.Error("should be ready after WaitForStartup")
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if lc.Ready() {
		t.Error("should not be ready after Shutdown")
	}
}

func TestStartupHooksExecute(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() {
			count.Add(1)
		})
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 3 {
		t.Errorf("startup hooks: got %d, want 3", got)
	}
}

func TestShutdownWaitsForTasks(t *testing.T) {
	lc := lifecycle.New()

	var order []string
	release := make(chan struct{})
	taskDone := make(chan struct{})

	lc.Go(func(ctx context.Context) {
		<-ctx.Done()
		<-release
		order = append(order, "task")
		close(taskDone)
	})

	lc.OnShutdown(func() {
		<-taskDone
		order = append(order, "hook")
	})

	lc.WaitForStartup()

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if len(order) != 2 || order[0] != "task" || order[1] != "hook" {
		t.Errorf("order: got %v, want [task hook]", order)
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	block := make(chan struct{})
	defer close(block)

	lc.Go(func(ctx context.Context) {
		<-block
	})

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
}
