package auth

import (
	"errors"
	"testing"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver("admin-secret", "sub-secret")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func TestResolveAdmin(t *testing.T) {
	r := testResolver(t)

	id, err := r.Resolve("admin", "admin-secret")
	if err != nil {
		t.Fatalf("resolve admin: %v", err)
	}
	if !id.IsAdmin() {
		t.Error("admin login did not yield an admin identity")
	}

	if _, err := r.Resolve("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("admin with wrong secret: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResolveAdminFallsThroughToSubscriber(t *testing.T) {
	r := testResolver(t)

	// When the admin secret does not match, "admin" is still a valid
	// subscriber username against the subscriber secret.
	id, err := r.Resolve("admin", "sub-secret")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.IsAdmin() {
		t.Error("subscriber secret yielded an admin identity")
	}
	if id.Subscriber != "admin" {
		t.Errorf("subscriber = %q, want admin", id.Subscriber)
	}
}

func TestResolveAdminBranchWinsOnSharedSecret(t *testing.T) {
	r, err := NewResolver("1234", "1234")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	id, err := r.Resolve("admin", "1234")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !id.IsAdmin() {
		t.Error("admin login under a shared secret must resolve to the admin identity")
	}
}

func TestResolveSubscriber(t *testing.T) {
	r := testResolver(t)

	id, err := r.Resolve("netaq_aljamal", "sub-secret")
	if err != nil {
		t.Fatalf("resolve subscriber: %v", err)
	}
	if id.IsAdmin() {
		t.Error("subscriber login yielded an admin identity")
	}
	if id.Subscriber != "netaq_aljamal" {
		t.Errorf("subscriber = %q, want netaq_aljamal", id.Subscriber)
	}

	if _, err := r.Resolve("netaq_aljamal", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong secret: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResolveTrimsUsername(t *testing.T) {
	r := testResolver(t)

	id, err := r.Resolve("  netaq_aljamal  ", "sub-secret")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id.Subscriber != "netaq_aljamal" {
		t.Errorf("subscriber = %q, want trimmed name", id.Subscriber)
	}
}

func TestResolveRejectsBlankUsername(t *testing.T) {
	r := testResolver(t)
	for _, username := range []string{"", "   ", "\t"} {
		if _, err := r.Resolve(username, "sub-secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("username %q: err = %v, want ErrInvalidCredentials", username, err)
		}
	}
}
