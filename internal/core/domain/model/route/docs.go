// Package route models a delivery route and its lifecycle.
//
// A route is created by a customer in status AVAILABLE, claimed by exactly one
// delivery agent (IN_PROGRESS) and completed by that same agent (COMPLETED):
//
//	AVAILABLE ──claim(agent)──> IN_PROGRESS ──complete(same agent)──> COMPLETED
//
// Transitions never go backwards and COMPLETED is terminal. The aggregate
// keeps the invariant "an agent is assigned if and only if the status is
// IN_PROGRESS or COMPLETED" on every constructor and mutator.
//
// The aggregate only decides whether a transition is legal for the snapshot it
// holds. Exclusivity between concurrent claims is enforced by the repository,
// which persists a claim with a conditional update.
package route
