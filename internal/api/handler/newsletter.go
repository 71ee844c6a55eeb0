package handler

import (
	"net/http"

	"github.com/jumpigames/newsletter/internal/api/apierr"
	"github.com/jumpigames/newsletter/internal/api/request"
	"github.com/jumpigames/newsletter/internal/api/response"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
)

// NewsletterHandler handles signups and the admin subscriber views
type NewsletterHandler struct {
	controller *newsletter.Controller
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(controller *newsletter.Controller) *NewsletterHandler {
	return &NewsletterHandler{
		controller: controller,
	}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	req, err := request.DecodeSubscribe(r)
	if err != nil {
		apierr.WriteError(w, r, apierr.NewInvalidRequestError())
		return
	}

	_, err = h.controller.Subscribe(r.Context(), newsletter.SubscribeInput{
		FullName:      string(req.FullName),
		Email:         string(req.Email),
		ParentGroup:   req.ParentGroup.IsSet(),
		PlayerGroup:   req.PlayerGroup.IsSet(),
		Agree:         req.Agree.IsSet(),
		AgreedToTerms: req.Agree.IsAffirmative(),
	})
	if err != nil {
		writeError(w, r, err, msgSubscribeFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.OK("נרשמת בהצלחה! תודה שנרשמת לקבלת עדכונים על ג'אמפי."))
}

// List handles GET /api/admin/subscribers
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.controller.List(r.Context())
	if err != nil {
		writeError(w, r, err, msgListFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.SubscribersFromModel(subs))
}

// Stats handles GET /api/admin/stats
func (h *NewsletterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.controller.Stats(r.Context())
	if err != nil {
		writeError(w, r, err, msgStatsFailed)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromService(stats))
}
