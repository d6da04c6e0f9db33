// Package kernel holds the value objects shared by every aggregate of the
// routing domain. Today that is only UUID, the identifier of users and routes.
package kernel
