// Package services contains domain services: stateless logic that belongs to
// the domain but not to a single aggregate.
//
// SecretGenerator mints the verification codes and reset tokens stored on
// users. Randomness comes from crypto/rand unless a reader is injected.
package services
