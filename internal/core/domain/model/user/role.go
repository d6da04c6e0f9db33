package user

import (
	"fmt"
	"strings"

	"routehub/internal/pkg/errs"
)

// Role is the closed set of actor kinds.
type Role int

const (
	UnknownRole Role = iota
	Customer
	DeliveryAgent
)

func getRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is not a valid role
	return map[Role]string{
		Customer:      "CUSTOMER",
		DeliveryAgent: "DELIVERY_AGENT",
	}
}

func ParseRole(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}
