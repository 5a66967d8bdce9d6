// ABOUTME: Live adjustment engine: threshold evaluation and applied side effects.
// ABOUTME: Decision is pure; Apply scales the plan, logs the event, then broadcasts.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/broadcast"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
	"github.com/harperreed/coach/internal/storage"
)

// Trigger thresholds and the flat reduction applied on trigger. Both
// thresholds are exclusive: a sample exactly at the threshold does not
// trigger.
const (
	VelocityLossThreshold = 0.15
	HRDriftThreshold      = 0.10
	DefaultDelta          = -0.05
)

// Decision is a triggered load adjustment that has not yet been
// applied. Its id doubles as the idempotency key for Apply retries.
type Decision struct {
	ID           uuid.UUID
	SessionID    uuid.UUID
	AthleteID    uuid.UUID
	Metric       models.TriggerMetric
	TriggerValue float64
	Delta        float64
	PromptText   string
}

// Event converts the decision into its durable log form.
func (d *Decision) Event() *models.AdjustmentEvent {
	return &models.AdjustmentEvent{
		ID:           d.ID,
		SessionID:    d.SessionID,
		AthleteID:    d.AthleteID,
		Metric:       d.Metric,
		TriggerValue: d.TriggerValue,
		Delta:        d.Delta,
		PromptText:   d.PromptText,
		CreatedAt:    time.Now(),
	}
}

// Evaluate applies the threshold rule to one live sample. Returns nil
// when the sample does not trigger; callers take no action in that
// case. Pure: no I/O, no state, each qualifying sample produces a new
// independent decision.
func Evaluate(sample *models.LiveMetricSample) *Decision {
	var threshold float64
	switch sample.Metric {
	case models.MetricVelocityLoss:
		threshold = VelocityLossThreshold
	case models.MetricHRDrift:
		threshold = HRDriftThreshold
	default:
		return nil
	}

	if sample.Value <= threshold {
		return nil
	}

	return &Decision{
		ID:           uuid.New(),
		SessionID:    sample.SessionID,
		AthleteID:    sample.AthleteID,
		Metric:       sample.Metric,
		TriggerValue: sample.Value,
		Delta:        DefaultDelta,
		PromptText:   promptText(sample.Metric, sample.Value, DefaultDelta),
	}
}

func promptText(metric models.TriggerMetric, value, delta float64) string {
	label := "Velocity loss"
	if metric == models.MetricHRDrift {
		label = "HR drift"
	}
	return fmt.Sprintf("%s at %.1f%%: reducing target loads by %.0f%%", label, value*100, -delta*100)
}

// PlanStore is the subset of the repository the engine mutates plans
// through.
type PlanStore interface {
	GetPlan(ctx context.Context, athleteID uuid.UUID) (*plan.Program, error)
	PutPlan(ctx context.Context, p *plan.Program) error
}

// EventStore is the append-only adjustment log.
type EventStore interface {
	AppendAdjustment(ctx context.Context, e *models.AdjustmentEvent) error
	AdjustmentExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Publisher is the fire-and-forget notification fan-out.
type Publisher interface {
	Publish(channel, event string, payload any)
}

// Engine evaluates live samples and applies triggered adjustments.
// Samples from one session arrive as an ordered stream and are handled
// one at a time; separate sessions share nothing but the store.
type Engine struct {
	plans    PlanStore
	events   EventStore
	pub      Publisher
	sessions *sessionTracker
}

// New creates an engine over the given stores and publisher.
func New(plans PlanStore, events EventStore, pub Publisher) *Engine {
	return &Engine{
		plans:    plans,
		events:   events,
		pub:      pub,
		sessions: newSessionTracker(),
	}
}

// HandleSample validates and evaluates one live sample, applying the
// adjustment if it triggers. Returns the decision (nil when the sample
// does not trigger) and any apply error. A decision returned with an
// error has not been applied and is safe to retry via Apply.
func (e *Engine) HandleSample(ctx context.Context, sample *models.LiveMetricSample) (*Decision, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}

	e.sessions.observe(sample.SessionID)

	dec := Evaluate(sample)
	if dec == nil {
		return nil, nil
	}

	e.sessions.transition(sample.SessionID, StateTriggered)
	if err := e.Apply(ctx, dec); err != nil {
		return dec, err
	}
	e.sessions.transition(sample.SessionID, StateApplied)
	e.sessions.transition(sample.SessionID, StateMonitoring)
	return dec, nil
}

// Apply performs the three effects of a triggered decision: scale the
// athlete's plan, append the adjustment event, publish the broadcast.
// The event write must be durable before the broadcast so subscribers
// reacting to it can always find the record.
//
// Apply is retryable: the event row is the durable marker of a
// completed apply. A retry whose event already exists skips the plan
// mutation (never double-penalizing a confirmed apply) and only
// re-publishes. If the event is confirmed absent the plan is rescaled
// from its current state.
func (e *Engine) Apply(ctx context.Context, dec *Decision) error {
	applied, err := e.events.AdjustmentExists(ctx, dec.ID)
	if err != nil {
		return fmt.Errorf("check adjustment: %w", err)
	}

	event := dec.Event()
	if !applied {
		if err := e.scalePlan(ctx, dec); err != nil {
			return err
		}
		if err := e.events.AppendAdjustment(ctx, event); err != nil {
			return fmt.Errorf("append adjustment: %w", err)
		}
	}

	e.pub.Publish(broadcast.SessionChannel(dec.SessionID), broadcast.EventLoadAdjusted, event)
	return nil
}

// scalePlan multiplies every target load in the athlete's active plan
// by (1 + delta), floored at 0. An athlete without an active plan has
// nothing to scale; that is not an error.
func (e *Engine) scalePlan(ctx context.Context, dec *Decision) error {
	p, err := e.plans.GetPlan(ctx, dec.AthleteID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	plan.ScaleTargetLoads(p, 1+dec.Delta)
	if err := e.plans.PutPlan(ctx, p); err != nil {
		return fmt.Errorf("store plan: %w", err)
	}
	return nil
}

// SessionState reports the tracked state for a live session.
func (e *Engine) SessionState(sessionID uuid.UUID) State {
	return e.sessions.state(sessionID)
}
