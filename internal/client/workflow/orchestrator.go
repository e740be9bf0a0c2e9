// Package workflow sequences multi-step operations for the UI: verifying a
// credential together with its blockchain proof, creating a credential and
// reporting its anchoring, and loading the dashboard.
//
// Every invocation is a fresh flow object. Its state can be read from other
// goroutines while it runs, and it refuses to run twice.
package workflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/idkeeper/internal/client/models"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
)

// Orchestrator builds flows over the auth and credential services.
type Orchestrator struct {
	auth     services.AuthService
	creds    services.CredentialService
	log      logging.Logger
	observer Observer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver installs an observer on every flow the orchestrator creates.
func WithObserver(o Observer) Option {
	return func(or *Orchestrator) { or.observer = o }
}

func New(auth services.AuthService, creds services.CredentialService, log logging.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{auth: auth, creds: creds, log: log.With("component", "workflow")}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) NewVerifyFlow() *VerifyFlow {
	f := &VerifyFlow{creds: o.creds}
	f.init("verify", o.log, o.observer)
	return f
}

func (o *Orchestrator) NewCreateFlow() *CreateFlow {
	f := &CreateFlow{creds: o.creds}
	f.init("create", o.log, o.observer)
	return f
}

// Dashboard is the signed-in landing view. Each half carries its own error.
type Dashboard struct {
	Profile        *models.Profile
	ProfileErr     error
	Credentials    []models.CredentialSummary
	CredentialsErr error
}

// Dashboard fetches the profile and the credential list concurrently. A
// failure of one does not cancel the other.
func (o *Orchestrator) Dashboard(ctx context.Context) Dashboard {
	var (
		d  Dashboard
		wg sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		d.Profile, d.ProfileErr = o.auth.Profile(ctx)
	}()
	go func() {
		defer wg.Done()
		d.Credentials, d.CredentialsErr = o.creds.List(ctx)
	}()
	wg.Wait()

	if d.ProfileErr != nil || d.CredentialsErr != nil {
		o.log.Warn(ctx, "dashboard incomplete", "profile_error", d.ProfileErr, "list_error", d.CredentialsErr)
	}
	return d
}
