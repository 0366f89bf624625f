package service

import (
	"motelhub/internal/model"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// System is the actor of gateway callbacks and scheduled jobs.
var System = Actor{Role: model.RoleAdmin}

// ID returns the user id for audit columns, nil for the system actor.
func (a Actor) ID() *uuid.UUID {
	if a.UserID == uuid.Nil {
		return nil
	}
	id := a.UserID
	return &id
}

// Unrestricted reports whether the actor may act on every motel.
func (a Actor) Unrestricted() bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleStaff
}

// canManage reports whether the actor may bill and collect for the motel.
func (a Actor) canManage(motel *model.Motel) bool {
	if a.Unrestricted() {
		return true
	}
	return a.Role == model.RoleLandlord && motel != nil && motel.OwnerID == a.UserID
}

// authorizeManage allows staff and the owning landlord.
func authorizeManage(a Actor, motel *model.Motel) error {
	if !a.canManage(motel) {
		return apperror.Forbidden("you do not manage this motel")
	}
	return nil
}

// authorizeView additionally allows tenants living under the contract.
func authorizeView(a Actor, inv *model.Invoice) error {
	if inv.Contract == nil {
		if a.Unrestricted() {
			return nil
		}
		return apperror.Forbidden("access to this invoice is denied")
	}
	if a.Role == model.RoleTenant {
		if inv.Contract.HasMember(a.UserID) {
			return nil
		}
		return apperror.Forbidden("access to this invoice is denied")
	}
	var motel *model.Motel
	if inv.Contract.Room != nil {
		motel = inv.Contract.Room.Motel
	}
	if !a.canManage(motel) {
		return apperror.Forbidden("access to this invoice is denied")
	}
	return nil
}
