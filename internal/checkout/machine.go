package checkout

import (
	"fmt"

	"github.com/prosaasfilms/configurator-backend/pkg/enums"
	pkgerrors "github.com/prosaasfilms/configurator-backend/pkg/errors"
)

// Event drives the checkout state machine.
type Event string

const (
	EventSubmit           Event = "submit"
	EventPaymentSucceeded Event = "payment_succeeded"
	EventPaymentFailed    Event = "payment_failed"
	EventReset            Event = "reset"
)

// Next is the pure transition function. It owns the full checkout lifecycle:
//
//	form -> processing -> success | critical_error
//
// with reset edges from both terminal states back to form. Any other
// combination is a state conflict.
func Next(status enums.OrderStatus, event Event) (enums.OrderStatus, error) {
	switch {
	case status == enums.OrderStatusForm && event == EventSubmit:
		return enums.OrderStatusProcessing, nil
	case status == enums.OrderStatusProcessing && event == EventPaymentSucceeded:
		return enums.OrderStatusSuccess, nil
	case status == enums.OrderStatusProcessing && event == EventPaymentFailed:
		return enums.OrderStatusCriticalError, nil
	case status == enums.OrderStatusSuccess && event == EventReset:
		return enums.OrderStatusForm, nil
	case status == enums.OrderStatusCriticalError && event == EventReset:
		return enums.OrderStatusForm, nil
	}
	return status, pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("event %s not allowed in status %s", event, status)).
		WithDetails(map[string]any{"status": status, "event": event})
}
