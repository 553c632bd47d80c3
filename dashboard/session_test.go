package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordersight/store"
)

func wideState() FilterState {
	return FilterState{
		Range:      DateRange{Start: "2000-01-01", End: "2100-01-01"},
		Subscriber: SubscriberAll,
	}
}

func TestSessionRefreshAndView(t *testing.T) {
	client := newPagedClient([]store.Order{
		{ID: 1, SubscriberName: "netaq_aljamal", Status: "PENDING", CreatedAt: time.Now()},
	})
	sess := NewSession(SubscriberIdentity("netaq_aljamal"), client, 1000, time.UTC)

	if _, err := sess.View(wideState()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("View before refresh: err = %v, want ErrNotLoaded", err)
	}

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	view, err := sess.View(wideState())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	want := Counters{Total: 1, Pending: 1}
	if view.Stats != want {
		t.Errorf("stats = %+v, want %+v", view.Stats, want)
	}
}

func TestSessionRefreshFailureKeepsFailureState(t *testing.T) {
	client := newPagedClient(makeOrders(5, "s1"))
	sess := NewSession(AdminIdentity(), client, 1000, time.UTC)

	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	client.failAt = len(client.requests) // next request fails
	if err := sess.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	// A failed refresh must not present the stale collection as current.
	if _, err := sess.View(wideState()); err == nil {
		t.Fatal("expected View to surface the failed-fetch state")
	}

	// A later successful refresh clears the failure.
	if err := sess.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh after failure: %v", err)
	}
	view, err := sess.View(wideState())
	if err != nil {
		t.Fatalf("view after recovery: %v", err)
	}
	if view.Stats.Total != 5 {
		t.Errorf("total = %d, want 5", view.Stats.Total)
	}
}

func TestSessionRefreshSuperseded(t *testing.T) {
	client := newPagedClient(makeOrders(3, "s1"))
	client.block = make(chan struct{})
	sess := NewSession(AdminIdentity(), client, 1000, time.UTC)

	first := make(chan error, 1)
	go func() {
		first <- sess.Refresh(context.Background())
	}()

	// Wait for the first refresh to reach the blocking fetch, then start
	// a newer one; the newer refresh cancels and supersedes the first.
	time.Sleep(50 * time.Millisecond)
	second := make(chan error, 1)
	go func() {
		second <- sess.Refresh(context.Background())
	}()

	select {
	case err := <-first:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("first refresh err = %v, want ErrSuperseded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh did not return")
	}

	close(client.block)
	select {
	case err := <-second:
		if err != nil {
			t.Fatalf("second refresh: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second refresh did not return")
	}

	view, err := sess.View(wideState())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Stats.Total != 3 {
		t.Errorf("total = %d, want 3", view.Stats.Total)
	}
}

func TestSessionCloseCancelsFetch(t *testing.T) {
	client := newPagedClient(makeOrders(3, "s1"))
	client.block = make(chan struct{})
	sess := NewSession(AdminIdentity(), client, 1000, time.UTC)

	done := make(chan error, 1)
	go func() {
		done <- sess.Refresh(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	sess.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected the closed session's refresh to fail")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not return after Close")
	}

	if _, err := sess.View(wideState()); err == nil {
		t.Fatal("expected View on closed session to fail")
	}
}

func TestRegistryDropReplacesIdentity(t *testing.T) {
	client := newPagedClient(makeOrders(2, "old_subscriber"))
	reg := NewRegistry(client, 1000, time.UTC)

	old := reg.Create(SubscriberIdentity("old_subscriber"))
	if err := old.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	reg.Drop(old.ID)
	if got := reg.Get(old.ID); got != nil {
		t.Error("dropped session still resolvable")
	}
	if _, err := old.View(wideState()); err == nil {
		t.Error("dropped session still serves its collection")
	}

	replacement := reg.Create(SubscriberIdentity("new_subscriber"))
	if reg.Get(replacement.ID) != replacement {
		t.Error("replacement session not resolvable")
	}
	if replacement.ID == old.ID {
		t.Error("session IDs must differ across logins")
	}
}
