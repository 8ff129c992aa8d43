package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/obra-api/internal/models"
)

// Unit events
const (
	UnitEventReserve = "reserve"
	UnitEventRelease = "release"
	UnitEventSell    = "sell"
	UnitEventCancel  = "cancel"
	UnitEventRestore = "restore"
)

// UnitFSM wraps a unit with its state machine
type UnitFSM struct {
	unit *models.Unit
	fsm  *fsm.FSM
}

// NewUnitFSM creates a new unit state machine seeded with the unit's current status
func NewUnitFSM(unit *models.Unit) *UnitFSM {
	ufsm := &UnitFSM{
		unit: unit,
	}

	ufsm.fsm = fsm.NewFSM(
		unit.Status,
		fsm.Events{
			// available → reserved
			{Name: UnitEventReserve, Src: []string{models.UnitStatusAvailable}, Dst: models.UnitStatusReserved},

			// reserved → available
			{Name: UnitEventRelease, Src: []string{models.UnitStatusReserved}, Dst: models.UnitStatusAvailable},

			// available → sold, only through contract issuance
			{Name: UnitEventSell, Src: []string{models.UnitStatusAvailable}, Dst: models.UnitStatusSold},

			// available/reserved → cancelled
			{Name: UnitEventCancel, Src: []string{models.UnitStatusAvailable, models.UnitStatusReserved}, Dst: models.UnitStatusCancelled},

			// cancelled → available
			{Name: UnitEventRestore, Src: []string{models.UnitStatusCancelled}, Dst: models.UnitStatusAvailable},
		},
		fsm.Callbacks{},
	)

	return ufsm
}

// Can reports whether the event may fire from the unit's current status
func (u *UnitFSM) Can(event string) bool {
	return u.fsm.Can(event)
}

// Fire applies the event and returns the status the unit moved from and to.
// The unit is updated in memory only; persisting is the caller's job.
func (u *UnitFSM) Fire(ctx context.Context, event string) (from, to string, err error) {
	from = u.fsm.Current()
	if !u.fsm.Can(event) {
		return from, from, fmt.Errorf("unit cannot %s in current state: %s", event, from)
	}

	if err := u.fsm.Event(ctx, event); err != nil {
		return from, from, fmt.Errorf("failed to %s unit: %w", event, err)
	}

	u.unit.Status = u.fsm.Current()
	return from, u.unit.Status, nil
}

// Current returns the current state
func (u *UnitFSM) Current() string {
	return u.fsm.Current()
}

// AvailableTransitions returns the events that can fire from the current state
func (u *UnitFSM) AvailableTransitions() []string {
	return u.fsm.AvailableTransitions()
}

// IsKnownEvent reports whether name is one of the unit events
func IsKnownEvent(name string) bool {
	switch name {
	case UnitEventReserve, UnitEventRelease, UnitEventSell, UnitEventCancel, UnitEventRestore:
		return true
	}
	return false
}
