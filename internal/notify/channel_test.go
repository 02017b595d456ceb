package notify

import (
	"testing"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

func TestShowReplacesCurrent(t *testing.T) {
	c := NewChannel()
	if c.Current() != nil {
		t.Fatal("new channel should be empty")
	}

	c.Show("first", Info, textdir.LTR)
	c.Show("second", Error, textdir.RTL)

	n := c.Current()
	if n == nil || n.Message != "second" || n.Severity != Error || n.Direction != textdir.RTL {
		t.Fatalf("unexpected current notification %+v", n)
	}

	c.Clear()
	if c.Current() != nil {
		t.Fatal("clear should remove the notification")
	}
}

func TestSubscribeReceivesLatestOnly(t *testing.T) {
	c := NewChannel()
	c.Show("before", Info, textdir.LTR)

	ch, cancel := c.Subscribe()
	defer cancel()

	if n := <-ch; n == nil || n.Message != "before" {
		t.Fatalf("expected current value on subscribe, got %+v", n)
	}

	c.Show("one", Success, textdir.LTR)
	c.Show("two", Success, textdir.LTR)
	c.Show("three", Success, textdir.LTR)

	if n := <-ch; n == nil || n.Message != "three" {
		t.Fatalf("expected only the latest value, got %+v", n)
	}
	select {
	case n := <-ch:
		t.Fatalf("expected no queued values, got %+v", n)
	default:
	}

	c.Clear()
	if n := <-ch; n != nil {
		t.Fatalf("expected nil after clear, got %+v", n)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	c := NewChannel()
	ch, cancel := c.Subscribe()
	<-ch
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	// publishing after unsubscribe must not panic
	c.Show("after", Info, textdir.LTR)
}

func TestCurrentReturnsCopy(t *testing.T) {
	c := NewChannel()
	c.Show("msg", Info, textdir.LTR)
	n := c.Current()
	n.Message = "changed"
	if c.Current().Message != "msg" {
		t.Fatal("Current must not expose internal state")
	}
}
