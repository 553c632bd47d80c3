// Package auth maps submitted credentials to a viewer identity. It is a
// deliberate placeholder: two fixed shared secrets, not per-user
// accounts. The pipeline behind it only depends on the Identity it
// produces, so swapping in a real credential service changes nothing
// downstream.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ordersight/dashboard"
)

// ErrInvalidCredentials is surfaced to the login form verbatim.
var ErrInvalidCredentials = errors.New("Invalid credentials")

type Resolver struct {
	adminHash      []byte
	subscriberHash []byte
}

// NewResolver hashes the configured secrets once; later comparisons go
// through bcrypt rather than raw string equality.
func NewResolver(adminPassword, subscriberPassword string) (*Resolver, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash admin secret: %w", err)
	}
	subscriberHash, err := bcrypt.GenerateFromPassword([]byte(subscriberPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash subscriber secret: %w", err)
	}
	return &Resolver{adminHash: adminHash, subscriberHash: subscriberHash}, nil
}

// Resolve maps a username/password pair to a viewer identity:
// "admin" plus the admin secret gives full visibility; otherwise any
// non-empty trimmed username plus the subscriber secret gives that
// subscriber's restricted view, "admin" included. Everything else fails
// with ErrInvalidCredentials.
func (r *Resolver) Resolve(username, password string) (dashboard.Identity, error) {
	if username == dashboard.AdminUsername && checkPassword(r.adminHash, password) {
		return dashboard.AdminIdentity(), nil
	}

	trimmed := strings.TrimSpace(username)
	if trimmed != "" && checkPassword(r.subscriberHash, password) {
		return dashboard.SubscriberIdentity(trimmed), nil
	}
	return dashboard.Identity{}, ErrInvalidCredentials
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
