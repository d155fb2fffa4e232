package router

import (
	"maplemed-support-be/pkg/support/intent"
)

// Name identifies a handler
type Name string

const (
	CollectUserData     Name = "collect_user_data"
	SymptomCheck        Name = "symptom_check"
	SuggestExercises    Name = "suggest_exercises"
	ProvideAdvice       Name = "provide_advice"
	EmergencyEscalation Name = "emergency_escalation"
	Fallback            Name = "fallback"
)

// Names lists every handler the router can select
var Names = []Name{CollectUserData, SymptomCheck, SuggestExercises, ProvideAdvice, EmergencyEscalation, Fallback}

var routable = map[intent.Intent]Name{
	intent.Profile:      CollectUserData,
	intent.SymptomCheck: SymptomCheck,
	intent.Exercise:     SuggestExercises,
	intent.Advice:       ProvideAdvice,
}

// Router is the per-turn transition function. It holds configuration only,
// no conversation state.
type Router struct {
	escalateClassified bool
}

type Option func(*Router)

// WithClassifiedEmergencyEscalation also sends the classifier's own
// "emergency" label to escalation. Off by default: only the keyword
// override escalates.
func WithClassifiedEmergencyEscalation(enabled bool) Option {
	return func(r *Router) {
		r.escalateClassified = enabled
	}
}

func NewRouter(opts ...Option) *Router {
	r := &Router{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route picks exactly one handler. The override always wins.
func (r *Router) Route(i intent.Intent, override bool) Name {
	if override {
		return EmergencyEscalation
	}
	if name, ok := routable[i]; ok {
		return name
	}
	if i == intent.Emergency && r.escalateClassified {
		return EmergencyEscalation
	}
	return Fallback
}
