package route

import (
	"errors"
	"strings"
	"time"

	"routehub/internal/core/domain/model/kernel"
	"routehub/internal/pkg/errs"
)

// Route is the aggregate root for one delivery. Fields are private so every
// change goes through a method that keeps the assignment invariant.
type Route struct {
	id          kernel.UUID
	customerID  kernel.UUID
	agentID     *kernel.UUID
	packageInfo string
	origin      string
	destination string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewRoute creates an AVAILABLE route owned by customerID.
//
//	r, err := route.NewRoute(kernel.NewUUID(), customerID, "2 boxes", "Warehouse 4", "Main St 1", now)
func NewRoute(
	id kernel.UUID,
	customerID kernel.UUID,
	packageInfo string,
	origin string,
	destination string,
	now time.Time,
) (*Route, error) {
	r := &Route{
		status:        Available,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setCustomer(customerID),
		r.setPackageInfo(packageInfo),
		r.setOrigin(origin),
		r.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute rebuilds a route from storage and re-checks every invariant.
func RestoreRoute(
	id kernel.UUID,
	customerID kernel.UUID,
	agentID *kernel.UUID,
	packageInfo string,
	origin string,
	destination string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Route, error) {
	r := &Route{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
		id := *agentID
		r.agentID = &id
	}

	if err := errors.Join(
		r.setID(id),
		r.setCustomer(customerID),
		r.setPackageInfo(packageInfo),
		r.setOrigin(origin),
		r.setDestination(destination),
		status.Validate(),
		status.ValidateCanHaveAgent(agentID != nil),
	); err != nil {
		return nil, err
	}
	r.status = status

	return r, nil
}

func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

func (r *Route) ID() kernel.UUID         { return r.id }
func (r *Route) CustomerID() kernel.UUID { return r.customerID }
func (r *Route) PackageInfo() string     { return r.packageInfo }
func (r *Route) Origin() string          { return r.origin }
func (r *Route) Destination() string     { return r.destination }
func (r *Route) Status() Status          { return r.status }
func (r *Route) CreatedAt() time.Time    { return r.createdAt }
func (r *Route) UpdatedAt() time.Time    { return r.updatedAt }

// AgentID returns a copy of the assignee, nil while the route is available.
func (r *Route) AgentID() *kernel.UUID {
	if r.agentID == nil {
		return nil
	}
	id := *r.agentID
	return &id
}

// IsAssignedTo reports whether agentID is the assignee.
func (r *Route) IsAssignedTo(agentID kernel.UUID) bool {
	return r.agentID != nil && r.agentID.IsEqual(agentID)
}

// Claim assigns the route to agentID and moves it to IN_PROGRESS.
//
// The check runs against this snapshot only. Callers persist the result with
// the repository's conditional claim, which is what makes the claim exclusive.
func (r *Route) Claim(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	next, err := r.status.Claim()
	if err != nil {
		return err
	}

	r.status = next
	r.agentID = &agentID
	r.updatedAt = now
	return nil
}

// Complete finishes the route. Only the assignee may complete, and only while
// the route is in progress.
func (r *Route) Complete(agentID kernel.UUID, now time.Time) error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}

	if !r.IsAssignedTo(agentID) {
		return ErrUnauthorized
	}

	r.status = next
	r.updatedAt = now
	return nil
}

// UpdateLocations lets the assignee edit origin and destination while the
// route is in progress. A nil argument leaves the field untouched. changed is
// true when at least one stored value differs afterwards.
func (r *Route) UpdateLocations(
	agentID kernel.UUID,
	origin *string,
	destination *string,
	now time.Time,
) (changed bool, err error) {
	if !r.IsAssignedTo(agentID) {
		return false, ErrUnauthorized
	}

	if err = r.status.ValidateEditable(); err != nil {
		return false, err
	}

	nextOrigin, nextDestination := r.origin, r.destination
	if origin != nil {
		nextOrigin = *origin
	}
	if destination != nil {
		nextDestination = *destination
	}

	if err = errors.Join(
		validateText("origin", nextOrigin),
		validateText("destination", nextDestination),
	); err != nil {
		return false, err
	}

	changed = nextOrigin != r.origin || nextDestination != r.destination
	if !changed {
		return false, nil
	}

	r.origin = nextOrigin
	r.destination = nextDestination
	r.updatedAt = now
	return true, nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	r.customerID = customerID
	return nil
}

func (r *Route) setPackageInfo(packageInfo string) error {
	if err := validateText("packageInfo", packageInfo); err != nil {
		return err
	}
	r.packageInfo = packageInfo
	return nil
}

func (r *Route) setOrigin(origin string) error {
	if err := validateText("origin", origin); err != nil {
		return err
	}
	r.origin = origin
	return nil
}

func (r *Route) setDestination(destination string) error {
	if err := validateText("destination", destination); err != nil {
		return err
	}
	r.destination = destination
	return nil
}

func validateText(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
