package assistant

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/config"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

type stubClient struct {
	reply       string
	err         error
	instruction string
	message     string
	calls       int
}

func (c *stubClient) Generate(_ context.Context, instruction, message string) (string, error) {
	c.calls++
	c.instruction = instruction
	c.message = message
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func newAssistantFixture(t *testing.T, client Client) (Service, *session.MemoryStore, uuid.UUID) {
	t.Helper()

	store := session.NewMemoryStore(time.Hour)
	o := order.New()
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	cfg := config.AssistantConfig{APIKey: "sk-test", SystemInstruction: "instruction"}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(cfg, store, client, logg, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store, o.ID
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	t.Parallel()

	client := &stubClient{reply: "Le film Opale diffuse la lumière."}
	svc, store, id := newAssistantFixture(t, client)

	got, err := svc.SendMessage(context.Background(), id, "  Quel film pour un bureau ?  ")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}

	// New sessions open with the greeting, so the turn adds entries 2 and 3.
	if len(got.Transcript) != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", len(got.Transcript))
	}
	user, reply := got.Transcript[1], got.Transcript[2]
	if user.Role != enums.ChatRoleUser || user.Text != "Quel film pour un bureau ?" {
		t.Fatalf("unexpected user entry %+v", user)
	}
	if reply.Role != enums.ChatRoleAssistant || reply.Text != client.reply {
		t.Fatalf("unexpected assistant entry %+v", reply)
	}
	if client.instruction != "instruction" || client.message != "Quel film pour un bureau ?" {
		t.Fatalf("client received %q / %q", client.instruction, client.message)
	}

	stored, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(stored.Transcript) != 3 {
		t.Fatalf("transcript not persisted, got %d entries", len(stored.Transcript))
	}
}

func TestSendMessageFallsBackOnGenerationError(t *testing.T) {
	t.Parallel()

	client := &stubClient{err: errors.New("provider down")}
	svc, _, id := newAssistantFixture(t, client)

	got, err := svc.SendMessage(context.Background(), id, "Bonjour")
	if err != nil {
		t.Fatalf("generation failure must not surface: %v", err)
	}
	last := got.Transcript[len(got.Transcript)-1]
	if last.Role != enums.ChatRoleAssistant || last.Text != FallbackReply {
		t.Fatalf("expected fallback reply, got %+v", last)
	}
}

func TestSendMessageFallsBackWithoutClient(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Hour)
	o := order.New()
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(config.AssistantConfig{}, store, nil, logg, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.SendMessage(context.Background(), o.ID, "Bonjour")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if got.Transcript[len(got.Transcript)-1].Text != FallbackReply {
		t.Fatalf("expected fallback reply without client")
	}
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	t.Parallel()

	client := &stubClient{reply: "ok"}
	svc, _, id := newAssistantFixture(t, client)

	_, err := svc.SendMessage(context.Background(), id, "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("client must not be called for blank text")
	}
}

func TestTranscriptUnknownSession(t *testing.T) {
	t.Parallel()

	client := &stubClient{reply: "ok"}
	svc, _, _ := newAssistantFixture(t, client)

	_, err := svc.Transcript(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
