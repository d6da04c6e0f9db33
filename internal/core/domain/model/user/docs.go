// Package user models the actors of the system together with the short lived
// secrets attached to them: the numeric verification challenge and the
// password reset grant.
//
// A user holds at most one challenge and at most one reset grant. Both are
// single use and expire strictly: a secret checked at its expiry instant is
// already invalid. Every failed check reports ErrInvalidOrExpired without
// saying which condition failed.
package user
