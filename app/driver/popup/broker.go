package popup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auth-client/app/domain"

	"github.com/google/uuid"
)

// PendingFlow describes an interactive federated sign-in waiting for the
// user to finish at the provider. The AuthURL is where the popup must
// navigate; the flow resolves once the callback fulfills or cancels it.
type PendingFlow struct {
	ID        uuid.UUID           `json:"id"`
	Provider  domain.ProviderKind `json:"provider"`
	AuthURL   string              `json:"auth_url"`
	CreatedAt time.Time           `json:"created_at"`
}

type outcome struct {
	sessionToken string
	err          error
}

type flowEntry struct {
	flow PendingFlow
	done chan outcome
}

// Broker coordinates interactive federated sign-in flows. The identity
// provider driver opens a flow and blocks on Await; the REST callback
// endpoints fulfill or cancel it from another goroutine.
type Broker struct {
	mu    sync.Mutex
	flows map[uuid.UUID]*flowEntry
}

// NewBroker creates an empty flow broker.
func NewBroker() *Broker {
	return &Broker{flows: make(map[uuid.UUID]*flowEntry)}
}

// Open registers a new pending flow and returns its descriptor.
func (b *Broker) Open(provider domain.ProviderKind, authURL string) PendingFlow {
	entry := &flowEntry{
		flow: PendingFlow{
			ID:        uuid.New(),
			Provider:  provider,
			AuthURL:   authURL,
			CreatedAt: time.Now(),
		},
		done: make(chan outcome, 1),
	}

	b.mu.Lock()
	b.flows[entry.flow.ID] = entry
	b.mu.Unlock()

	return entry.flow
}

// Await blocks until the flow is fulfilled, cancelled, or the context ends.
// Context cancellation counts as the user abandoning the popup.
func (b *Broker) Await(ctx context.Context, flowID uuid.UUID) (string, error) {
	b.mu.Lock()
	entry, ok := b.flows[flowID]
	b.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("no pending flow %s", flowID)
	}

	defer b.remove(flowID)

	select {
	case res := <-entry.done:
		if res.err != nil {
			return "", res.err
		}
		return res.sessionToken, nil
	case <-ctx.Done():
		return "", domain.NewSessionError(domain.KindUserCancelled, "sign-in window closed", ctx.Err())
	}
}

// Fulfill resolves a pending flow with the provider session token obtained
// by the callback.
func (b *Broker) Fulfill(flowID uuid.UUID, sessionToken string) error {
	return b.resolve(flowID, outcome{sessionToken: sessionToken})
}

// Cancel resolves a pending flow as abandoned by the user.
func (b *Broker) Cancel(flowID uuid.UUID) error {
	return b.resolve(flowID, outcome{
		err: domain.NewSessionError(domain.KindUserCancelled, "sign-in cancelled", nil),
	})
}

// Pending lists flows still waiting on the user, newest first.
func (b *Broker) Pending() []PendingFlow {
	b.mu.Lock()
	defer b.mu.Unlock()

	flows := make([]PendingFlow, 0, len(b.flows))
	for _, entry := range b.flows {
		flows = append(flows, entry.flow)
	}
	for i := 0; i < len(flows); i++ {
		for j := i + 1; j < len(flows); j++ {
			if flows[j].CreatedAt.After(flows[i].CreatedAt) {
				flows[i], flows[j] = flows[j], flows[i]
			}
		}
	}
	return flows
}

func (b *Broker) resolve(flowID uuid.UUID, res outcome) error {
	b.mu.Lock()
	entry, ok := b.flows[flowID]
	if ok {
		delete(b.flows, flowID)
	}
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("no pending flow %s", flowID)
	}

	entry.done <- res
	return nil
}

func (b *Broker) remove(flowID uuid.UUID) {
	b.mu.Lock()
	delete(b.flows, flowID)
	b.mu.Unlock()
}
