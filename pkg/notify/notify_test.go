package notify_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadform/pkg/notify"
)

func TestRecorderAndMulti(t *testing.T) {
	first := &notify.Recorder{}
	second := &notify.Recorder{}
	fanout := notify.Multi(first, nil, second, notify.Discard)

	msg := notify.Notification{Severity: notify.SeverityDestructive, Title: "t", Description: "d"}
	fanout.Notify(context.Background(), msg)

	want := []notify.Notification{msg}
	if diff := cmp.Diff(want, first.Notifications()); diff != "" {
		t.Fatalf("first recorder mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, second.Notifications()); diff != "" {
		t.Fatalf("second recorder mismatch (-want +got):\n%s", diff)
	}

	first.Reset()
	if first.Notifications() != nil {
		t.Fatalf("expected reset recorder to be empty")
	}
}
