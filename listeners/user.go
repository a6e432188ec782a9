package listeners

import (
	"github.com/gobuffalo/events"

	"github.com/silinternational/abs-insurance-api/log"
	"github.com/silinternational/abs-insurance-api/models"
)

func userCreated(e events.Event) {
	defer panicRecover(e.Kind)

	var user models.User
	if err := findObject(e.Payload, &user, e.Kind); err != nil {
		return
	}

	log.WithFields(map[string]any{
		"event":     e.Kind,
		"user_id":   user.ID,
		"user_name": user.UserName,
		"app_role":  user.AppRole,
	}).Info("user account created")
}
