package commands

// SecretGenerator mints verification codes and reset tokens.
// services.SecretGenerator is the production implementation.
type SecretGenerator interface {
	Code() (string, error)
	ResetToken() (string, error)
}
