package listeners

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gofrs/uuid"

	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/log"
	"github.com/silinternational/abs-insurance-api/models"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

// Register new listener functions here.  Remember, though, that these groupings just
// describe what we want.  They don't make it happen this way. The listeners
// themselves still need to verify the event kind
var apiListeners = map[string][]apiListener{
	domain.EventApiUserCreated: {
		{
			name:     "user-created",
			listener: userCreated,
		},
	},
	domain.EventApiPolicyCreated: {
		{
			name:     "policy-created",
			listener: policyChanged,
		},
	},
	domain.EventApiPolicyUpdated: {
		{
			name:     "policy-updated",
			listener: policyChanged,
		},
	},
	domain.EventApiPolicyDeleted: {
		{
			name:     "policy-deleted",
			listener: policyDeleted,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for kind, listeners := range apiListeners {
		for _, l := range listeners {
			_, err := events.NamedListen(l.name, onlyKind(kind, l.listener))
			if err != nil {
				log.Errorf("Failed registering listener: %s, err: %s", l.name, err.Error())
			}
		}
	}
}

// onlyKind drops events of any other kind before they reach the listener
func onlyKind(kind string, listener func(events.Event)) func(events.Event) {
	return func(e events.Event) {
		if e.Kind != kind {
			return
		}
		listener(e)
	}
}

func getID(p events.Payload) (any, error) {
	i, ok := p[domain.EventPayloadID]
	if !ok {
		return nil, errors.New("id not in event payload")
	}

	switch id := i.(type) {
	case int:
		return id, nil
	case uuid.UUID:
		return id, nil
	case string:
		u, err := uuid.FromString(id)
		if err != nil {
			return nil, fmt.Errorf("id is not a uuid: %w", err)
		}
		return u, nil
	default:
		return nil, fmt.Errorf("id not a valid type: %T", id)
	}
}

// findObject loads the record named in the payload, retrying with a growing delay since the
// emitting transaction may not have committed yet
func findObject(payload events.Payload, object any, listenerName string) error {
	id, err := getID(payload)
	if err != nil {
		err = errors.New("Failed to get object ID from event payload: " + err.Error())
		log.Error(err.Error())
		return err
	}

	var findErr error
	for i := 1; i <= domain.Env.ListenerMaxRetries; i++ {
		findErr = models.DB.Find(object, id)
		if findErr == nil {
			return nil
		}
		time.Sleep(getDelayDuration(i * i))
	}

	err = fmt.Errorf("Failed to find object in %s, %v", listenerName, findErr)
	log.Error(err.Error())
	return err
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s", name, err)
	}
}

// getDelayDuration is a helper function to calculate delay in milliseconds before processing event
func getDelayDuration(multiplier int) time.Duration {
	return time.Duration(domain.Env.ListenerDelayMilliseconds) * time.Millisecond * time.Duration(multiplier)
}
