package handler

import "context"

// EmergencyMessage is returned verbatim on every escalation.
const EmergencyMessage = "Your message indicates you might be in crisis. " +
	"Please reach out immediately to a trusted person or a mental health professional. " +
	"If you are in danger, call emergency services or a suicide prevention hotline immediately. " +
	"Here are some important Canadian resources:\n" +
	"- Canada Suicide Prevention Service: 1-833-456-4566 or Text 45645\n" +
	"- Kids Help Phone: 1-800-668-6868 or Text CONNECT to 686868\n" +
	"- Visit https://www.crisisservicescanada.ca/en/ for more help."

// FallbackMessage is returned when no handler matches the intent.
const FallbackMessage = "🤔 Sorry, I didn't understand. You can share your feelings, ask for exercises, or get advice."

// Escalation never calls the completion service and never fails, so it
// stays available during an outage.
type Escalation struct{}

func (Escalation) Handle(context.Context, Input) (Output, error) {
	return Output{Response: EmergencyMessage}, nil
}

func (Escalation) Scope() Scope { return ScopeNone }

type Fallback struct{}

func (Fallback) Handle(context.Context, Input) (Output, error) {
	return Output{Response: FallbackMessage}, nil
}

func (Fallback) Scope() Scope { return ScopeNone }
