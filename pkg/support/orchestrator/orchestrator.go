// Package orchestrator sequences one support turn:
// safety filter, intent classifier, router, handler.
package orchestrator

import (
	"context"

	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/support/handler"
	"maplemed-support-be/pkg/support/intent"
	"maplemed-support-be/pkg/support/memory"
	"maplemed-support-be/pkg/support/profile"
	"maplemed-support-be/pkg/support/router"
	"maplemed-support-be/pkg/support/safety"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const module = "Orchestrator"

// DegradedMessage replaces the response whenever a stage fails.
const DegradedMessage = "Sorry, I'm having trouble processing that right now."

// Request is everything the caller hands in for one turn. The maps are
// read, never written.
type Request struct {
	Utterance     string
	Profile       memory.Map
	Session       memory.Map
	Persistent    memory.Map
	PriorOverride bool
}

// Turn is the ephemeral record of one invocation
type Turn struct {
	Utterance string
	Intent    intent.Intent
	Response  string
	Override  bool
}

// Result is returned to the caller, who owns storing the three maps.
type Result struct {
	Turn
	Handler  router.Name
	Degraded bool

	Profile    memory.Map
	Session    memory.Map
	Persistent memory.Map
}

type Orchestrator struct {
	classifier *intent.Classifier
	router     *router.Router
	handlers   map[router.Name]handler.Handler
	logger     logger.ILogger
	tracer     trace.Tracer
}

// New wires every handler against one completion provider.
func New(provider llm.LLMProvider, r *router.Router, log logger.ILogger) *Orchestrator {
	if r == nil {
		r = router.NewRouter()
	}
	return &Orchestrator{
		classifier: intent.NewClassifier(provider, log),
		router:     r,
		handlers: map[router.Name]handler.Handler{
			router.CollectUserData:     handler.NewCollector(profile.NewExtractor(provider, log)),
			router.SymptomCheck:        handler.NewSymptomChecker(provider),
			router.SuggestExercises:    handler.NewExerciseCoach(provider),
			router.ProvideAdvice:       handler.NewAdvisor(provider),
			router.EmergencyEscalation: handler.Escalation{},
			router.Fallback:            handler.Fallback{},
		},
		logger: log,
		tracer: otel.Tracer("maplemed-support-be/orchestrator"),
	}
}

// Invoke runs one turn. It never returns an error: any stage failure turns
// into DegradedMessage, and deltas merged before the failure are kept.
func (o *Orchestrator) Invoke(ctx context.Context, req Request) *Result {
	ctx, span := o.tracer.Start(ctx, "support.turn")
	defer span.End()

	res := &Result{
		Turn:       Turn{Utterance: req.Utterance},
		Profile:    req.Profile.Clone(),
		Session:    req.Session.Clone(),
		Persistent: req.Persistent.Clone(),
	}

	keyword, override := safety.Match(req.Utterance)
	res.Override = override

	// Classification runs even under override so previous_intent stays current
	classified, err := o.classify(ctx, req.Utterance, res.Session, res.Persistent)
	res.Intent = classified.Intent
	res.Session = res.Session.Apply(classified.SessionDelta)
	if err != nil && !override {
		return o.degrade(span, res, "classify", err)
	}

	res.Handler = o.router.Route(res.Intent, override)
	if res.Intent == intent.Emergency && !override && res.Handler != router.EmergencyEscalation {
		o.logger.Warn(module, "Classifier labelled emergency without crisis keywords", map[string]interface{}{
			"handler": string(res.Handler),
		})
	}

	out, err := o.dispatch(ctx, res)
	if err != nil {
		return o.degrade(span, res, string(res.Handler), err)
	}
	o.merge(res, out)
	res.Response = out.Response

	span.SetAttributes(
		attribute.String("support.intent", string(res.Intent)),
		attribute.String("support.handler", string(res.Handler)),
		attribute.Bool("support.override", res.Override),
	)
	o.logger.Info(module, "Turn completed", map[string]interface{}{
		"intent":         string(res.Intent),
		"handler":        string(res.Handler),
		"override":       res.Override,
		"prior_override": req.PriorOverride,
		"crisis_keyword": keyword,
	})
	return res
}

// SuggestExercises skips classification and routing and runs the exercise
// handler directly. Memory is not touched.
func (o *Orchestrator) SuggestExercises(ctx context.Context, p memory.Map) (string, bool) {
	ctx, span := o.tracer.Start(ctx, "support.exercises")
	defer span.End()

	out, err := o.handlers[router.SuggestExercises].Handle(ctx, handler.Input{Profile: p.Clone()})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "exercises failed")
		o.logger.Error(module, "Direct exercise suggestion failed", map[string]interface{}{"error": err.Error()})
		return DegradedMessage, true
	}
	return out.Response, false
}

func (o *Orchestrator) classify(ctx context.Context, utterance string, session, persistent memory.Map) (intent.Result, error) {
	ctx, span := o.tracer.Start(ctx, "support.classify")
	defer span.End()

	res, err := o.classifier.Classify(ctx, utterance, session, persistent)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.String("support.intent", string(res.Intent)))
	return res, err
}

func (o *Orchestrator) dispatch(ctx context.Context, res *Result) (handler.Output, error) {
	ctx, span := o.tracer.Start(ctx, "support.handle."+string(res.Handler))
	defer span.End()

	h, ok := o.handlers[res.Handler]
	if !ok {
		h = handler.Fallback{}
	}
	out, err := h.Handle(ctx, handler.Input{
		Utterance:  res.Utterance,
		Profile:    res.Profile.Clone(),
		Session:    res.Session.Clone(),
		Persistent: res.Persistent.Clone(),
	})
	if err != nil {
		span.RecordError(err)
	}
	return out, err
}

// merge applies out's deltas, restricted to the scope the handler declared.
func (o *Orchestrator) merge(res *Result, out handler.Output) {
	scope := handler.ScopeNone
	if h, ok := o.handlers[res.Handler]; ok {
		scope = h.Scope()
	}

	apply := func(target memory.Map, delta memory.Map, need handler.Scope, name string) memory.Map {
		if len(delta) == 0 {
			return target
		}
		if !scope.Has(need) {
			o.logger.Warn(module, "Dropped delta outside handler scope", map[string]interface{}{
				"handler": string(res.Handler),
				"map":     name,
			})
			return target
		}
		return target.Apply(delta)
	}

	res.Profile = apply(res.Profile, out.ProfileDelta, handler.ScopeProfile, "profile")
	res.Session = apply(res.Session, out.SessionDelta, handler.ScopeSession, "session")
	res.Persistent = apply(res.Persistent, out.PersistentDelta, handler.ScopePersistent, "persistent")
}

func (o *Orchestrator) degrade(span trace.Span, res *Result, stage string, err error) *Result {
	span.RecordError(err)
	span.SetStatus(codes.Error, stage+" failed")

	o.logger.Error(module, "Stage failed, returning degraded response", map[string]interface{}{
		"stage":    stage,
		"intent":   string(res.Intent),
		"override": res.Override,
		"error":    err.Error(),
	})
	res.Response = DegradedMessage
	res.Degraded = true
	return res
}
