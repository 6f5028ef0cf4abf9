package network

import (
	"testing"

	"photohunt-server/internal/domain"
	"photohunt-server/pkg/api"
)

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster(2)
	ch := b.Register("a")

	if !b.SendTo("a", api.Moved()) {
		t.Fatal("send to registered subscriber failed")
	}
	if msg := <-ch; msg.Action != api.ActionMoved {
		t.Errorf("got %q, want moved", msg.Action)
	}

	if b.SendTo("ghost", api.Moved()) {
		t.Error("send to unknown subscriber must fail")
	}
}

func TestBroadcaster_FullMailboxFails(t *testing.T) {
	b := NewBroadcaster(1)
	b.Register("slow")
	fast := b.Register("fast")

	if failed := b.Broadcast(api.Moved()); len(failed) != 0 {
		t.Fatalf("first broadcast failed for %v", failed)
	}
	<-fast

	failed := b.Broadcast(api.PictureTaken())
	if len(failed) != 1 || failed[0] != domain.SessionID("slow") {
		t.Errorf("failed = %v, want [slow]", failed)
	}
	if b.SendTo("slow", api.Moved()) {
		t.Error("send to a full mailbox must fail")
	}
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster(0)
	ch := b.Register("a")

	b.Unregister("a")
	if _, ok := <-ch; ok {
		t.Error("channel must be closed after Unregister")
	}
	if b.HasSubscriber("a") || b.SubscriberCount() != 0 {
		t.Error("subscriber must be gone")
	}

	// повторный вызов не паникует
	b.Unregister("a")
}

func TestBroadcaster_RegisterTwiceClosesOld(t *testing.T) {
	b := NewBroadcaster(0)
	old := b.Register("a")
	b.Register("a")

	if _, ok := <-old; ok {
		t.Error("old channel must be closed on re-register")
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", b.SubscriberCount())
	}
}
