package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CommunicationHandler struct {
	Calls          usecase.CallRepositoryInterface
	Communications usecase.CommunicationRepositoryInterface
	Mailer         usecase.EmailService
}

func NewCommunicationHandler(
	calls usecase.CallRepositoryInterface,
	communications usecase.CommunicationRepositoryInterface,
	mailer usecase.EmailService,
) *CommunicationHandler {
	return &CommunicationHandler{Calls: calls, Communications: communications, Mailer: mailer}
}

type sendCommunicationRequest struct {
	CallID  int64  `json:"call_id"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (h *CommunicationHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, entity.CommunicationEmail)
}

// HandleWhatsApp é só log: o envio acontece pelo aparelho do executivo,
// via link wa.me montado no front.
func (h *CommunicationHandler) HandleWhatsApp(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, entity.CommunicationWhatsApp)
}

// handle registra a comunicação e, no caso de email, dispara o envio em
// background.
func (h *CommunicationHandler) handle(w http.ResponseWriter, r *http.Request, commType entity.CommunicationType) {
	var req sendCommunicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error())
		return
	}

	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Mensagem é obrigatória")
		return
	}

	call, err := h.Calls.FindByID(r.Context(), req.CallID)
	if err != nil {
		if errors.Is(err, entity.ErrCallNotFound) {
			writeError(w, http.StatusNotFound, "Call não encontrado")
			return
		}
		writeError(w, http.StatusInternalServerError, "Erro ao carregar call")
		return
	}

	if commType == entity.CommunicationEmail && call.Email == "" {
		writeError(w, http.StatusBadRequest, "Call não tem email cadastrado")
		return
	}

	user := middleware.CurrentUser(r)
	comm := &entity.Communication{
		CallID:  call.ID,
		UserID:  user.EmpID,
		Type:    commType,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Communications.Log(r.Context(), comm); err != nil {
		logrus.Errorf("❌ Erro ao registrar comunicação do call %d: %v", call.ID, err)
		writeError(w, http.StatusInternalServerError, "Erro ao registrar comunicação")
		return
	}

	if commType == entity.CommunicationEmail {
		to := call.Email
		subject := req.Subject
		if subject == "" {
			subject = "Contato - " + call.DisplayName()
		}
		body := req.Message
		go func() {
			if err := h.Mailer.Send(to, subject, body); err != nil {
				logrus.Errorf("❌ Falha ao enviar email para %s: %v", to, err)
				middleware.RecordIntegrationError("smtp")
			}
		}()
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"communication": comm,
	})
}
