package systimer

import (
	"testing"
	"time"
)

func TestTimer_StoppedChannelIsNil(t *testing.T) {
	timer := New()
	if timer.C() != nil {
		t.Error("expected nil channel before Start")
	}
	if timer.Running() {
		t.Error("expected stopped timer")
	}
}

func TestTimer_Ticks(t *testing.T) {
	timer := New()
	timer.Start(5 * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("expected a tick within 1s")
	}
}

func TestTimer_StopDiscardsChannel(t *testing.T) {
	timer := New()
	timer.Start(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	timer.Stop()

	if timer.C() != nil {
		t.Error("expected nil channel after Stop")
	}
	// stopping twice is harmless
	timer.Stop()
}

func TestTimer_RestartChangesInterval(t *testing.T) {
	timer := New()
	timer.Start(time.Hour)
	timer.Start(5 * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("expected restart to use the new interval")
	}
}

func TestTimer_NonPositiveInterval(t *testing.T) {
	timer := New()
	timer.Start(0)
	defer timer.Stop()

	if !timer.Running() {
		t.Error("expected timer to run with the minimum interval")
	}
}
