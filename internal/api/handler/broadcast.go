package handler

import (
	"fmt"
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
	"github.com/jumpigames/newsletter/internal/api/request"
	"github.com/jumpigames/newsletter/internal/api/response"
	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/services/broadcast"
)

// BroadcastHandler handles sending updates to subscribers
type BroadcastHandler struct {
	service *broadcast.Service
}

// NewBroadcastHandler creates a new broadcast handler
func NewBroadcastHandler(service *broadcast.Service) *BroadcastHandler {
	return &BroadcastHandler{
		service: service,
	}
}

// SendUpdate handles POST /api/admin/send-update
func (h *BroadcastHandler) SendUpdate(w http.ResponseWriter, r *http.Request) {
	var req request.SendUpdateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		apierr.WriteError(w, r, apierr.NewInvalidRequestError())
		return
	}

	result, err := h.service.Send(r.Context(), email.Update{
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, r, err, msgSendFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.SendUpdate{
		Success: true,
		Message: summary(result),
		SentTo:  result.Sent,
		Failed:  result.Failed,
	})
}

func summary(result *broadcast.Result) string {
	if result.Sent == 0 && result.Failed == 0 {
		return "אין נרשמים לשלוח אליהם"
	}
	msg := fmt.Sprintf("העדכון נשלח בהצלחה ל-%d נרשמים", result.Sent)
	if result.Failed > 0 {
		msg += fmt.Sprintf(" (%d נכשלו)", result.Failed)
	}
	return msg
}
