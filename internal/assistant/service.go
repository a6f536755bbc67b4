package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
	"github.com/prosaasfilms/configurator-backend/pkg/metrics"
)

// FallbackReply is appended whenever the generation provider is missing,
// slow, or failing. The quote itself is never blocked on the assistant.
const FallbackReply = "Le service d'assistance est surchargé, mais votre devis est sauvegardé."

// Service handles the conversational side panel of the configurator.
type Service interface {
	// SendMessage appends the visitor message and an assistant reply to the
	// session transcript and returns the updated order.
	SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*order.Order, error)
	// Transcript returns the conversation recorded on the session.
	Transcript(ctx context.Context, sessionID uuid.UUID) ([]order.ChatMessage, error)
}

type service struct {
	sessions    session.Store
	client      Client
	instruction string
	enabled     bool
	logg        *logger.Logger
	metrics     *metrics.CheckoutMetrics
}

// NewService builds the assistant service. A nil client is allowed and pins
// every reply to the fallback, matching an unset API key.
func NewService(cfg config.AssistantConfig, sessions session.Store, client Client, logg *logger.Logger, m *metrics.CheckoutMetrics) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		sessions:    sessions,
		client:      client,
		instruction: cfg.SystemInstruction,
		enabled:     cfg.Enabled() && client != nil,
		logg:        logg,
		metrics:     m,
	}, nil
}

func (s *service) SendMessage(ctx context.Context, sessionID uuid.UUID, text string) (*order.Order, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}

	o, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithSessionID(ctx, sessionID.String())
	o.AppendMessage(enums.ChatRoleUser, text)

	reply := FallbackReply
	if !s.enabled {
		s.logg.Debug(ctx, "assistant.disabled")
		s.metrics.IncAssistantFallback()
	} else if generated, genErr := s.client.Generate(ctx, s.instruction, text); genErr != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", genErr.Error()), "assistant.generation_failed")
		s.metrics.IncAssistantFallback()
	} else {
		reply = generated
	}
	o.AppendMessage(enums.ChatRoleAssistant, reply)

	if err := s.sessions.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Transcript(ctx context.Context, sessionID uuid.UUID) ([]order.ChatMessage, error) {
	o, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return o.Transcript, nil
}
