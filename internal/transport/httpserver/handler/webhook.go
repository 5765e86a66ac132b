package handler

import (
	"encoding/json"
	"io"
	"net/http"

	userdomain "sitetrack-go/internal/domain/user"
)

const maxWebhookBody = 1 << 20

type webhookEvent struct {
	Type string          `json:"type"`
	Data webhookUserData `json:"data"`
}

type webhookUserData struct {
	ID             string                 `json:"id"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	ImageURL       string                 `json:"image_url"`
	EmailAddresses []webhookEmailAddress  `json:"email_addresses"`
	PublicMetadata map[string]interface{} `json:"public_metadata"`
}

type webhookEmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// IdentityWebhook receives user-lifecycle events from the identity provider.
// The HMAC signature is verified before anything is parsed; verified create
// and update events upsert the user row, delete events remove it, and any
// other event type is logged and acknowledged.
func (h *Handlers) IdentityWebhook(w http.ResponseWriter, r *http.Request) {
	if h.Webhooks == nil {
		writeError(w, http.StatusServiceUnavailable, "webhook_not_configured", "webhook secret not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "cannot read body")
		return
	}

	err = h.Webhooks.Verify(
		r.Header.Get("Webhook-Id"),
		r.Header.Get("Webhook-Timestamp"),
		r.Header.Get("Webhook-Signature"),
		body,
	)
	if err != nil {
		h.log.BusinessError("webhook: signature rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_signature", "invalid signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		input := userdomain.UpsertUserInput{ID: event.Data.ID}
		if len(event.Data.EmailAddresses) > 0 && event.Data.EmailAddresses[0].EmailAddress != "" {
			email := event.Data.EmailAddresses[0].EmailAddress
			input.Email = &email
		}
		if name := joinName(event.Data.FirstName, event.Data.LastName); name != "" {
			input.Name = &name
		}
		if event.Data.ImageURL != "" {
			avatarURL := event.Data.ImageURL
			input.AvatarURL = &avatarURL
		}

		if _, err := h.Users.Upsert(r.Context(), input); err != nil {
			h.log.InternalError("webhook: user upsert failed", err, "user_id", event.Data.ID, "event", event.Type)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

	case "user.deleted":
		if err := h.Users.Delete(r.Context(), event.Data.ID); err != nil {
			h.log.InternalError("webhook: user delete failed", err, "user_id", event.Data.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

	default:
		h.log.Info("webhook: ignoring event", "event", event.Type)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
