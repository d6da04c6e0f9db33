package user

import (
	"fmt"
	"strings"

	"routehub/internal/pkg/errs"
)

// Purpose tells what a verification challenge unlocks.
type Purpose int

const (
	UnknownPurpose Purpose = iota
	EmailVerification
	PasswordRecovery
)

func getPurposeStrings() map[Purpose]string {
	//nolint:exhaustive // UnknownPurpose is not a valid purpose
	return map[Purpose]string{
		EmailVerification: "EMAIL_VERIFICATION",
		PasswordRecovery:  "PASSWORD_RECOVERY",
	}
}

func ParsePurpose(s string) (Purpose, error) {
	for purpose, str := range getPurposeStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return purpose, nil
		}
	}
	return UnknownPurpose, errs.NewValueIsInvalidErrorWithCause("purpose", fmt.Errorf("%q is not a valid purpose", s))
}

func (p Purpose) Validate() error {
	if _, ok := getPurposeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("purpose", fmt.Errorf("%d is not a valid purpose", p))
	}
	return nil
}

func (p Purpose) String() string {
	if str, ok := getPurposeStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// Label is the subject line used when the code is mailed.
func (p Purpose) Label() string {
	switch p {
	case EmailVerification:
		return "Verify your email"
	case PasswordRecovery:
		return "Password recovery"
	default:
		return "Verification code"
	}
}
