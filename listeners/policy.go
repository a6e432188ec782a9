package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
)

// policyChanged records the policy's component set after a create or update. It reads the event
// payload only; the emitting transaction may still be open.
func policyChanged(e events.Event) {
	defer panicRecover(e.Kind)

	log.WithFields(policyFields(e)).Info("policy saved")
}

func policyDeleted(e events.Event) {
	defer panicRecover(e.Kind)

	log.WithFields(policyFields(e)).Info("policy deleted")
}

func policyFields(e events.Event) map[string]any {
	fields := map[string]any{
		"event":       e.Kind,
		"policy_id":   e.Payload[domain.EventPayloadID],
		"policy_name": e.Payload[domain.EventPayloadName],
	}
	if components, ok := e.Payload[domain.EventPayloadComponents]; ok {
		fields["components"] = components
	}
	return fields
}
