package checkout

import (
	"regexp"
	"strings"

	"github.com/prosaasfilms/configurator-backend/internal/order"
)

// Field keys of the per-field error map, matching the storefront form names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// emailPattern accepts the basic local@domain.tld shape; deliverability is
// out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateClient guards the form -> processing transition. It returns the
// per-field messages surfaced next to the inputs; an empty map means the
// submission may proceed.
func ValidateClient(client order.ClientData) map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(client.LastName) == "" {
		fieldErrors[FieldLastName] = "Nom requis"
	}
	if strings.TrimSpace(client.FirstName) == "" {
		fieldErrors[FieldFirstName] = "Prénom requis"
	}
	if strings.TrimSpace(client.Email) == "" || !emailPattern.MatchString(client.Email) {
		fieldErrors[FieldEmail] = "Email invalide"
	}
	return fieldErrors
}
