package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
)

// DefaultWindowCM is the side length assigned to a freshly added window.
const DefaultWindowCM = 100

// Greeting is the assistant's fixed opening transcript entry.
const Greeting = "Bonjour ! Je suis l'assistant expert de l'agence. Besoin d'un conseil technique sur vos vitrages ?"

// WindowItem is one physical window to be filmed. Dimensions are centimeters.
type WindowItem struct {
	ID       uuid.UUID `json:"id"`
	WidthCM  float64   `json:"width_cm"`
	HeightCM float64   `json:"height_cm"`
}

// AreaM2 converts the window surface from cm² to m².
func (w WindowItem) AreaM2() float64 {
	return w.WidthCM * w.HeightCM / 10000
}

// ClientData carries the billing/contact identity for the order.
type ClientData struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	BillingAddress       string `json:"billing_address"`
	VATNumber            string `json:"vat_number"`
	HasDifferentShipping bool   `json:"has_different_shipping"`
	ShippingAddress      string `json:"shipping_address"`
}

// Options is the selected product configuration.
type Options struct {
	Design                   enums.FilmDesign `json:"design"`
	Delivery                 bool             `json:"delivery"`
	ProfessionalInstallation bool             `json:"professional_installation"`
}

// ChatMessage is one transcript entry of the embedded assistant.
type ChatMessage struct {
	Role enums.ChatRole `json:"role"`
	Text string         `json:"text"`
	At   time.Time      `json:"at"`
}

// Dimension selects which side of a window a mutation targets.
type Dimension string

const (
	DimensionWidth  Dimension = "width"
	DimensionHeight Dimension = "height"
)

// IsValid reports whether the value is a known Dimension.
func (d Dimension) IsValid() bool {
	return d == DimensionWidth || d == DimensionHeight
}

// Order is the session-owned aggregate: client data, the window list, chosen
// options, the checkout status and the assistant transcript. It serializes to
// JSON so session stores can snapshot it.
type Order struct {
	ID          uuid.UUID         `json:"id"`
	Status      enums.OrderStatus `json:"status"`
	Client      ClientData        `json:"client"`
	Windows     []WindowItem      `json:"windows"`
	Options     Options           `json:"options"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Transcript  []ChatMessage     `json:"transcript"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// New seeds a fresh order the way the storefront opens: one default window,
// the Opale film, no add-ons, and the assistant greeting.
func New() *Order {
	now := time.Now().UTC()
	return &Order{
		ID:     uuid.New(),
		Status: enums.OrderStatusForm,
		Windows: []WindowItem{
			{ID: uuid.New(), WidthCM: DefaultWindowCM, HeightCM: DefaultWindowCM},
		},
		Options: Options{Design: enums.FilmDesignOpale},
		Transcript: []ChatMessage{
			{Role: enums.ChatRoleAssistant, Text: Greeting, At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddWindow appends a default-sized window and returns it.
func (o *Order) AddWindow() (WindowItem, error) {
	if err := o.mutable(); err != nil {
		return WindowItem{}, err
	}
	item := WindowItem{ID: uuid.New(), WidthCM: DefaultWindowCM, HeightCM: DefaultWindowCM}
	o.Windows = append(o.Windows, item)
	o.touch()
	return item, nil
}

// RemoveWindow deletes the window with the given id, preserving insertion
// order of the remainder.
func (o *Order) RemoveWindow(id uuid.UUID) error {
	if err := o.mutable(); err != nil {
		return err
	}
	for i, w := range o.Windows {
		if w.ID == id {
			o.Windows = append(o.Windows[:i], o.Windows[i+1:]...)
			o.touch()
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "window not found")
}

// UpdateWindow replaces one dimension of the window with the given id. Zero is
// accepted (an emptied numeric field), negative values are rejected.
func (o *Order) UpdateWindow(id uuid.UUID, dim Dimension, value float64) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if !dim.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "dimension must be width or height")
	}
	if value < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "dimension must not be negative")
	}
	for i := range o.Windows {
		if o.Windows[i].ID != id {
			continue
		}
		if dim == DimensionWidth {
			o.Windows[i].WidthCM = value
		} else {
			o.Windows[i].HeightCM = value
		}
		o.touch()
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "window not found")
}

// UpdateClient replaces the client data wholesale and clears stale per-field
// checkout errors.
func (o *Order) UpdateClient(client ClientData) error {
	if err := o.mutable(); err != nil {
		return err
	}
	o.Client = client
	o.FieldErrors = nil
	o.touch()
	return nil
}

// UpdateOptions replaces the product configuration wholesale.
func (o *Order) UpdateOptions(opts Options) error {
	if err := o.mutable(); err != nil {
		return err
	}
	if !opts.Design.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown film design")
	}
	o.Options = opts
	o.touch()
	return nil
}

// AppendMessage adds a transcript entry. The transcript is append-only and
// independent of the checkout status.
func (o *Order) AppendMessage(role enums.ChatRole, text string) {
	o.Transcript = append(o.Transcript, ChatMessage{Role: role, Text: text, At: time.Now().UTC()})
	o.touch()
}

// SetStatus records a checkout transition decided by the state machine.
func (o *Order) SetStatus(status enums.OrderStatus) {
	o.Status = status
	o.touch()
}

// SetFieldErrors records the per-field validation messages of a rejected
// submission.
func (o *Order) SetFieldErrors(fieldErrors map[string]string) {
	o.FieldErrors = fieldErrors
	o.touch()
}

// mutable guards form mutations: once checkout starts the form view is gone
// and edits are rejected rather than silently dropped.
func (o *Order) mutable() error {
	if o.Status != enums.OrderStatusForm {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not editable in its current status").
			WithDetails(map[string]any{"status": o.Status})
	}
	return nil
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
