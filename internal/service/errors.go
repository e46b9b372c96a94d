package service

import "errors"

// Sentinel errors surfaced to the API layer. Validation failures are
// rejected requests with a specific reason; anything else rolls back the
// whole transaction and surfaces as a generic failure.
var (
	// Capacity exceeded; shown to players as "clase llena".
	ErrSlotFull = errors.New("slot is full")
	// The user already holds an active booking on this slot.
	ErrDuplicateBooking = errors.New("user already booked this slot")
	// Wallet short for the requested payment method.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// A full slot could not be confirmed: every court overlaps. The slot
	// stays a full proposal and an operator has to intervene.
	ErrNoCourtAvailable = errors.New("no court available")
	// The instructor window is already blocked (the classified original
	// and its open sibling share instructor and time; only one confirms).
	ErrInstructorUnavailable = errors.New("instructor not available")
	// Cancellation of a booking that is already cancelled.
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	// Recycled or operator-marked seats can only be bought with points.
	ErrRecycledSeatsPointsOnly = errors.New("recycled seats are points-only")
	// Only the booking owner may cancel it.
	ErrNotBookingOwner = errors.New("booking belongs to another user")
	// Stored state that should be unrepresentable, e.g. a court number
	// without a court reference.
	ErrInconsistentState = errors.New("inconsistent slot state")
	// Request validation failure.
	ErrInvalidArgument = errors.New("invalid argument")
)
