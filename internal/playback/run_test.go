package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/goleak"
)

func TestRun_ManualClock(t *testing.T) {
	defer goleak.VerifyNone(t, ginkgoInterrupt)

	rec := scene.NewReconciler(scale.NewRegistry(scale.DefaultParams()))
	s := New(years(3), rec)

	frames := make(chan Frame, 16)
	s.AddObserver(ObserverFunc(func(f Frame) { frames <- f }))

	clock := NewManualClock(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, clock.C()) }()

	if f := <-frames; f.Index != 0 {
		t.Fatalf("first frame = %d, want 0", f.Index)
	}

	want := []int{1, 2, 0, 1}
	for _, w := range want {
		clock.Tick(DefaultInterval)
		if f := <-frames; f.Index != w {
			t.Fatalf("frame = %d, want %d", f.Index, w)
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestRun_ClosedTicks(t *testing.T) {
	defer goleak.VerifyNone(t, ginkgoInterrupt)

	rec := scene.NewReconciler(scale.NewRegistry(scale.DefaultParams()))
	s := New(years(2), rec)

	clock := NewManualClock(time.Unix(0, 0))
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), clock.C()) }()

	clock.Tick(DefaultInterval)
	clock.Close()

	if err := <-done; err != nil {
		t.Errorf("Run returned %v, want nil", err)
	}
	if got := s.State().Frame; got != 1 {
		t.Errorf("frame = %d, want 1", got)
	}
}

func TestRun_NoData(t *testing.T) {
	rec := scene.NewReconciler(scale.NewRegistry(scale.DefaultParams()))
	s := New(nil, rec)

	err := s.Run(context.Background(), nil)
	if !errors.Is(err, gaperr.ErrNoData) {
		t.Errorf("Run returned %v, want ErrNoData", err)
	}
}

func TestRunEvery_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, ginkgoInterrupt)

	rec := scene.NewReconciler(scale.NewRegistry(scale.DefaultParams()))
	s := New(years(4), rec)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	err := RunEvery(ctx, s, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RunEvery returned %v, want deadline exceeded", err)
	}
	if s.Phase() != Running {
		t.Errorf("phase = %s, want running", s.Phase())
	}
}

// ginkgoInterrupt ignores the signal watcher RunSpecs leaves behind in TestPlayback.
var ginkgoInterrupt = goleak.IgnoreTopFunction("github.com/onsi/ginkgo/v2/internal/interrupt_handler.(*InterruptHandler).registerForInterrupts.func2")
