package configurator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/internal/order"
	"github.com/prosaasfilms/configurator-backend/internal/session"
	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
	"github.com/prosaasfilms/configurator-backend/pkg/logger"
)

func newService(t *testing.T) (Service, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore(time.Hour)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(store, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestCreateSeedsDefaultOrder(t *testing.T) {
	t.Parallel()

	svc, store := newService(t)

	o, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Status != enums.OrderStatusForm {
		t.Fatalf("expected form status, got %s", o.Status)
	}
	if len(o.Windows) != 1 || o.Windows[0].WidthCM != order.DefaultWindowCM {
		t.Fatalf("expected one default window, got %+v", o.Windows)
	}
	if o.Options.Design != enums.FilmDesignOpale {
		t.Fatalf("expected Opale default design, got %s", o.Options.Design)
	}

	stored, err := store.Get(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if len(stored.Transcript) != 1 || stored.Transcript[0].Text != order.Greeting {
		t.Fatalf("expected greeting transcript, got %+v", stored.Transcript)
	}
}

func TestWindowRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	o, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	after, err := svc.AddWindow(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("add window: %v", err)
	}
	if len(after.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(after.Windows))
	}
	added := after.Windows[1]

	after, err = svc.UpdateWindow(context.Background(), o.ID, added.ID, order.DimensionWidth, 250)
	if err != nil {
		t.Fatalf("update window: %v", err)
	}
	if after.Windows[1].WidthCM != 250 || after.Windows[1].HeightCM != order.DefaultWindowCM {
		t.Fatalf("unexpected dimensions %+v", after.Windows[1])
	}

	after, err = svc.RemoveWindow(context.Background(), o.ID, added.ID)
	if err != nil {
		t.Fatalf("remove window: %v", err)
	}
	if len(after.Windows) != 1 || after.Windows[0].ID != o.Windows[0].ID {
		t.Fatalf("remove must preserve the remaining windows, got %+v", after.Windows)
	}
}

func TestUpdateWindowRejectsNegative(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	o, _ := svc.Create(context.Background())

	_, err := svc.UpdateWindow(context.Background(), o.ID, o.Windows[0].ID, order.DimensionHeight, -10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestMutationsRejectedOutsideForm(t *testing.T) {
	t.Parallel()

	svc, store := newService(t)
	o, _ := svc.Create(context.Background())
	o.SetStatus(enums.OrderStatusProcessing)
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := svc.AddWindow(context.Background(), o.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}

func TestGetUnknownSession(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateClientClearsFieldErrors(t *testing.T) {
	t.Parallel()

	svc, store := newService(t)
	o, _ := svc.Create(context.Background())
	o.SetFieldErrors(map[string]string{"email": "Email invalide"})
	if err := store.Save(context.Background(), o); err != nil {
		t.Fatalf("save: %v", err)
	}

	after, err := svc.UpdateClient(context.Background(), o.ID, order.ClientData{
		FirstName: "Marie",
		LastName:  "Durand",
		Email:     "marie@example.fr",
	})
	if err != nil {
		t.Fatalf("update client: %v", err)
	}
	if after.FieldErrors != nil {
		t.Fatalf("field errors must be cleared, got %v", after.FieldErrors)
	}
	if after.Client.FirstName != "Marie" {
		t.Fatalf("client not replaced: %+v", after.Client)
	}
}
