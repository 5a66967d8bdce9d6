// ABOUTME: Tests for the adjustment engine.
// ABOUTME: Covers threshold boundaries, effect ordering, partial failure, and retries.
package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
	"github.com/harperreed/coach/internal/storage"
)

// effectLog records the order side effects happen in across the fakes.
type effectLog struct {
	entries []string
}

func (l *effectLog) add(s string) { l.entries = append(l.entries, s) }

type fakePlans struct {
	log      *effectLog
	plans    map[uuid.UUID]*plan.Program
	putCalls int
}

func newFakePlans(log *effectLog) *fakePlans {
	return &fakePlans{log: log, plans: make(map[uuid.UUID]*plan.Program)}
}

func (f *fakePlans) GetPlan(ctx context.Context, athleteID uuid.UUID) (*plan.Program, error) {
	p, ok := f.plans[athleteID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakePlans) PutPlan(ctx context.Context, p *plan.Program) error {
	f.putCalls++
	f.log.add("plan")
	f.plans[p.AthleteID] = p
	return nil
}

type fakeEvents struct {
	log     *effectLog
	events  map[uuid.UUID]*models.AdjustmentEvent
	failing bool
}

func newFakeEvents(log *effectLog) *fakeEvents {
	return &fakeEvents{log: log, events: make(map[uuid.UUID]*models.AdjustmentEvent)}
}

func (f *fakeEvents) AppendAdjustment(ctx context.Context, e *models.AdjustmentEvent) error {
	if f.failing {
		return fmt.Errorf("event store unavailable")
	}
	f.log.add("event")
	f.events[e.ID] = e
	return nil
}

func (f *fakeEvents) AdjustmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.events[id]
	return ok, nil
}

type fakePublisher struct {
	log       *effectLog
	published []any
}

func (f *fakePublisher) Publish(channel, event string, payload any) {
	f.log.add("broadcast")
	f.published = append(f.published, payload)
}

func testEngine(t *testing.T) (*Engine, *fakePlans, *fakeEvents, *fakePublisher) {
	t.Helper()
	log := &effectLog{}
	plans := newFakePlans(log)
	events := newFakeEvents(log)
	pub := &fakePublisher{log: log}
	return New(plans, events, pub), plans, events, pub
}

func seedPlan(plans *fakePlans, athleteID uuid.UUID, load float64) *plan.Program {
	p := plan.NewProgram(athleteID, "Phase 1")
	p.Blocks = []plan.Block{{
		ID:   uuid.New(),
		Name: "Base",
		Sessions: []plan.Session{{
			ID:   uuid.New(),
			Name: "Day 1",
			Exercises: []plan.Exercise{
				{ID: uuid.New(), Name: "Back Squat", Sets: 5, Reps: 5, TargetLoad: load},
				{ID: uuid.New(), Name: "Bench Press", Sets: 3, Reps: 8, TargetLoad: load},
			},
		}},
	}}
	plans.plans[athleteID] = p
	return p
}

func sample(metric models.TriggerMetric, value float64) *models.LiveMetricSample {
	return models.NewLiveMetricSample(uuid.New(), uuid.New(), metric, value)
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		metric  models.TriggerMetric
		value   float64
		trigger bool
	}{
		{"velocity loss at threshold", models.MetricVelocityLoss, 0.15, false},
		{"velocity loss above threshold", models.MetricVelocityLoss, 0.16, true},
		{"velocity loss well below", models.MetricVelocityLoss, 0.05, false},
		{"hr drift at threshold", models.MetricHRDrift, 0.10, false},
		{"hr drift above threshold", models.MetricHRDrift, 0.25, true},
		{"hr drift just below", models.MetricHRDrift, 0.099, false},
		{"zero value", models.MetricVelocityLoss, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Evaluate(sample(tt.metric, tt.value))
			if tt.trigger && dec == nil {
				t.Fatal("expected a decision, got nil")
			}
			if !tt.trigger && dec != nil {
				t.Fatalf("expected nil, got %+v", dec)
			}
			if dec != nil && dec.Delta != -0.05 {
				t.Errorf("Delta = %v, want -0.05", dec.Delta)
			}
		})
	}
}

func TestEvaluatePromptText(t *testing.T) {
	dec := Evaluate(sample(models.MetricHRDrift, 0.25))
	if dec == nil {
		t.Fatal("expected a decision")
	}
	want := "HR drift at 25.0%: reducing target loads by 5%"
	if dec.PromptText != want {
		t.Errorf("PromptText = %q, want %q", dec.PromptText, want)
	}

	dec = Evaluate(sample(models.MetricVelocityLoss, 0.18))
	want = "Velocity loss at 18.0%: reducing target loads by 5%"
	if dec.PromptText != want {
		t.Errorf("PromptText = %q, want %q", dec.PromptText, want)
	}
}

func TestHandleSampleNoTrigger(t *testing.T) {
	e, plans, events, pub := testEngine(t)

	s := sample(models.MetricVelocityLoss, 0.15)
	dec, err := e.HandleSample(context.Background(), s)
	if err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}
	if dec != nil {
		t.Errorf("decision = %+v, want nil at the boundary", dec)
	}
	if plans.putCalls != 0 || len(events.events) != 0 || len(pub.published) != 0 {
		t.Error("non-triggering sample caused side effects")
	}
	if got := e.SessionState(s.SessionID); got != StateMonitoring {
		t.Errorf("state = %s, want monitoring", got)
	}
}

func TestHandleSampleRejectsInvalid(t *testing.T) {
	e, _, _, _ := testEngine(t)

	bad := &models.LiveMetricSample{Metric: "cadence", Value: 0.5}
	if _, err := e.HandleSample(context.Background(), bad); err == nil {
		t.Error("HandleSample accepted an invalid sample")
	}
}

func TestHandleSampleAppliesAllEffects(t *testing.T) {
	e, plans, events, pub := testEngine(t)

	s := sample(models.MetricHRDrift, 0.25)
	seedPlan(plans, s.AthleteID, 100)

	dec, err := e.HandleSample(context.Background(), s)
	if err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}
	if dec == nil || dec.Delta != -0.05 {
		t.Fatalf("decision = %+v, want delta -0.05", dec)
	}

	// Every leaf scaled 100 -> 95.
	plans.plans[s.AthleteID].Visit(func(ex *plan.Exercise) {
		if ex.TargetLoad != 95 {
			t.Errorf("%s: TargetLoad = %v, want 95", ex.Name, ex.TargetLoad)
		}
	})

	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	if len(pub.published) != 1 {
		t.Fatalf("published = %d, want 1", len(pub.published))
	}
	published := pub.published[0].(*models.AdjustmentEvent)
	if published.ID != dec.ID {
		t.Errorf("published event id %s != decision id %s", published.ID, dec.ID)
	}

	// The event write must precede the broadcast.
	want := []string{"plan", "event", "broadcast"}
	if len(plans.log.entries) != 3 {
		t.Fatalf("effect log = %v, want %v", plans.log.entries, want)
	}
	for i, e := range plans.log.entries {
		if e != want[i] {
			t.Fatalf("effect order = %v, want %v", plans.log.entries, want)
		}
	}

	if got := e.SessionState(s.SessionID); got != StateMonitoring {
		t.Errorf("state = %s, want monitoring after applied", got)
	}
}

func TestEventFailureBlocksBroadcast(t *testing.T) {
	e, plans, events, pub := testEngine(t)

	s := sample(models.MetricVelocityLoss, 0.2)
	seedPlan(plans, s.AthleteID, 100)
	events.failing = true

	dec, err := e.HandleSample(context.Background(), s)
	if err == nil {
		t.Fatal("HandleSample should surface the event store failure")
	}
	if dec == nil {
		t.Fatal("failed apply should still return the decision for retry")
	}
	if len(pub.published) != 0 {
		t.Error("broadcast happened without a durable event record")
	}

	// Retry once the event store recovers. The event was confirmed
	// absent, so the apply completes.
	events.failing = false
	if err := e.Apply(context.Background(), dec); err != nil {
		t.Fatalf("retry Apply failed: %v", err)
	}
	if len(events.events) != 1 || len(pub.published) != 1 {
		t.Errorf("after retry: events=%d published=%d, want 1/1", len(events.events), len(pub.published))
	}
}

func TestApplyRetryAfterConfirmedEventIsIdempotent(t *testing.T) {
	e, plans, events, pub := testEngine(t)

	s := sample(models.MetricVelocityLoss, 0.2)
	seedPlan(plans, s.AthleteID, 100)

	dec, err := e.HandleSample(context.Background(), s)
	if err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}

	// Caller retries after e.g. a lost response. The event exists, so
	// the plan must not be reduced again.
	if err := e.Apply(context.Background(), dec); err != nil {
		t.Fatalf("retry Apply failed: %v", err)
	}

	plans.plans[s.AthleteID].Visit(func(ex *plan.Exercise) {
		if ex.TargetLoad != 95 {
			t.Errorf("%s: TargetLoad = %v, want 95 (no double penalty)", ex.Name, ex.TargetLoad)
		}
	})
	if len(events.events) != 1 {
		t.Errorf("events = %d, want 1", len(events.events))
	}
	// The notification is re-sent; it is at-most-once and not durable.
	if len(pub.published) != 2 {
		t.Errorf("published = %d, want 2", len(pub.published))
	}
}

func TestRepeatedTriggersCompound(t *testing.T) {
	e, plans, _, _ := testEngine(t)

	sessionID := uuid.New()
	athleteID := uuid.New()
	seedPlan(plans, athleteID, 100)

	for i := 0; i < 2; i++ {
		s := models.NewLiveMetricSample(sessionID, athleteID, models.MetricVelocityLoss, 0.2)
		if _, err := e.HandleSample(context.Background(), s); err != nil {
			t.Fatalf("HandleSample %d failed: %v", i, err)
		}
	}

	// Two triggers compound: 100 * 0.95 * 0.95.
	plans.plans[athleteID].Visit(func(ex *plan.Exercise) {
		if ex.TargetLoad < 90.24 || ex.TargetLoad > 90.26 {
			t.Errorf("%s: TargetLoad = %v, want ~90.25", ex.Name, ex.TargetLoad)
		}
	})
}

func TestMissingPlanIsNotFatal(t *testing.T) {
	e, _, events, pub := testEngine(t)

	s := sample(models.MetricHRDrift, 0.2)
	dec, err := e.HandleSample(context.Background(), s)
	if err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}
	if dec == nil {
		t.Fatal("expected a decision")
	}
	if len(events.events) != 1 || len(pub.published) != 1 {
		t.Errorf("events=%d published=%d, want 1/1 (event and broadcast still happen)",
			len(events.events), len(pub.published))
	}
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	e, plans, events, _ := testEngine(t)

	a1, a2 := uuid.New(), uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	seedPlan(plans, a1, 100)
	seedPlan(plans, a2, 200)

	if _, err := e.HandleSample(context.Background(), models.NewLiveMetricSample(s1, a1, models.MetricVelocityLoss, 0.2)); err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}
	if _, err := e.HandleSample(context.Background(), models.NewLiveMetricSample(s2, a2, models.MetricHRDrift, 0.05)); err != nil {
		t.Fatalf("HandleSample failed: %v", err)
	}

	plans.plans[a1].Visit(func(ex *plan.Exercise) {
		if ex.TargetLoad != 95 {
			t.Errorf("athlete 1 %s: TargetLoad = %v, want 95", ex.Name, ex.TargetLoad)
		}
	})
	plans.plans[a2].Visit(func(ex *plan.Exercise) {
		if ex.TargetLoad != 200 {
			t.Errorf("athlete 2 %s: TargetLoad = %v, want 200 (untouched)", ex.Name, ex.TargetLoad)
		}
	})
	if len(events.events) != 1 {
		t.Errorf("events = %d, want 1", len(events.events))
	}
}
