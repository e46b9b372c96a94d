package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/padelpoint/club-core/internal/model"
	"github.com/padelpoint/club-core/internal/schedule"
	"github.com/padelpoint/club-core/internal/service"
)

type Handlers struct {
	booking *service.BookingService
	wallet  *service.WalletService
}

func NewHandlers(booking *service.BookingService, wallet *service.WalletService) *Handlers {
	return &Handlers{booking: booking, wallet: wallet}
}

type bookRequest struct {
	TimeSlotID    string `json:"timeSlotId"`
	UserID        string `json:"userId"`
	GroupSize     int    `json:"groupSize"`
	PaymentMethod string `json:"paymentMethod"`
}

type bookingResponse struct {
	ID             string  `json:"id"`
	TimeSlotID     string  `json:"timeSlotId"`
	UserID         string  `json:"userId"`
	GroupSize      int     `json:"groupSize"`
	Status         string  `json:"status"`
	AmountBlocked  int64   `json:"amountBlocked"`
	PaidWithPoints bool    `json:"paidWithPoints"`
	PointsUsed     int64   `json:"pointsUsed"`
	IsRecycled     bool    `json:"isRecycled"`
	CancelledAt    *string `json:"cancelledAt,omitempty"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	resp := bookingResponse{
		ID:             b.ID.String(),
		TimeSlotID:     b.TimeSlotID.String(),
		UserID:         b.UserID.String(),
		GroupSize:      b.GroupSize,
		Status:         string(b.Status),
		AmountBlocked:  b.AmountBlocked,
		PaidWithPoints: b.PaidWithPoints,
		PointsUsed:     b.PointsUsed,
		IsRecycled:     b.IsRecycled,
	}
	if b.CancelledAt != nil {
		s := b.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	return resp
}

func (h *Handlers) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	booking, err := h.booking.Book(r.Context(), service.BookRequest{
		TimeSlotID:    req.TimeSlotID,
		UserID:        req.UserID,
		GroupSize:     req.GroupSize,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

type cancelRequest struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
}

func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	booking, err := h.booking.Cancel(r.Context(), service.CancelRequest{
		BookingID: req.BookingID,
		UserID:    req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

type creditsSlotsRequest struct {
	SlotIndex int    `json:"slotIndex"`
	Action    string `json:"action"`
}

func (h *Handlers) CreditsSlots(w http.ResponseWriter, r *http.Request) {
	var req creditsSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	slot, err := h.booking.ToggleCreditsSlot(r.Context(), chi.URLParam(r, "id"), req.SlotIndex, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSlotResponse(slot))
}

type slotResponse struct {
	ID                      string  `json:"id"`
	ClubID                  string  `json:"clubId"`
	InstructorID            string  `json:"instructorId"`
	CourtNumber             *int    `json:"courtNumber,omitempty"`
	StartsAt                string  `json:"startsAt"`
	EndsAt                  string  `json:"endsAt"`
	MaxPlayers              int     `json:"maxPlayers"`
	Level                   string  `json:"level"`
	GenderCategory          *string `json:"genderCategory,omitempty"`
	State                   string  `json:"state"`
	TotalPrice              int64   `json:"totalPrice"`
	PointsPrice             int64   `json:"pointsPrice"`
	HasRecycledSlots        bool    `json:"hasRecycledSlots"`
	AvailableRecycledSlots  int     `json:"availableRecycledSlots"`
	RecycledSlotsOnlyPoints bool    `json:"recycledSlotsOnlyPoints"`
}

func toSlotResponse(s *model.TimeSlot) slotResponse {
	return slotResponse{
		ID:                      s.ID.String(),
		ClubID:                  s.ClubID.String(),
		InstructorID:            s.InstructorID.String(),
		CourtNumber:             s.CourtNumber,
		StartsAt:                s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:                  s.EndsAt.UTC().Format(time.RFC3339),
		MaxPlayers:              s.MaxPlayers,
		Level:                   s.Level,
		GenderCategory:          s.GenderCategory,
		State:                   string(s.State),
		TotalPrice:              s.TotalPrice,
		PointsPrice:             s.PointsPrice,
		HasRecycledSlots:        s.HasRecycledSlots,
		AvailableRecycledSlots:  s.AvailableRecycledSlots,
		RecycledSlotsOnlyPoints: s.RecycledSlotsOnlyPoints,
	}
}

func (h *Handlers) ListSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseTime(q.Get("from"), time.Now().UTC())
	if err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}
	to, err := parseTime(q.Get("to"), from.AddDate(0, 0, 7))
	if err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	slots, err := h.booking.ListBookable(r.Context(), q.Get("clubId"), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]slotResponse, 0, len(slots))
	for i := range slots {
		items = append(items, toSlotResponse(&slots[i]))
	}

	page := schedule.Paginate(items, atoiDefault(q.Get("page"), 1), atoiDefault(q.Get("pageSize"), 20))
	writeJSON(w, http.StatusOK, map[string]any{
		"slots":    page.Items,
		"page":     page.Page,
		"pageSize": page.PageSize,
		"total":    page.Total,
		"hasNext":  page.HasNext,
	})
}

func (h *Handlers) UserBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	now := time.Now().UTC()
	from, err := parseTime(q.Get("from"), now.AddDate(0, -3, 0))
	if err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}
	to, err := parseTime(q.Get("to"), now.AddDate(0, 3, 0))
	if err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	bookings, err := h.booking.ListUserBookings(
		r.Context(), chi.URLParam(r, "id"), from, to, atoiDefault(q.Get("limit"), 50))
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, toBookingResponse(&bookings[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": items})
}

type walletResponse struct {
	Credits        int64              `json:"credits"`
	BlockedCredits int64              `json:"blockedCredits"`
	Points         int64              `json:"points"`
	BlockedPoints  int64              `json:"blockedPoints"`
	Transactions   []walletTxResponse `json:"transactions"`
}

type walletTxResponse struct {
	Kind         string `json:"kind"`
	Action       string `json:"action"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balanceAfter"`
	BlockedAfter int64  `json:"blockedAfter"`
	Concept      string `json:"concept"`
	CreatedAt    string `json:"createdAt"`
}

func (h *Handlers) Wallet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.wallet.Balances(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	history, err := h.wallet.History(r.Context(), userID, atoiDefault(r.URL.Query().Get("limit"), 50))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := walletResponse{
		Credits:        user.Credits,
		BlockedCredits: user.BlockedCredits,
		Points:         user.Points,
		BlockedPoints:  user.BlockedPoints,
		Transactions:   make([]walletTxResponse, 0, len(history)),
	}
	for _, tx := range history {
		resp.Transactions = append(resp.Transactions, walletTxResponse{
			Kind:         string(tx.Kind),
			Action:       string(tx.Action),
			Amount:       tx.Amount,
			BalanceAfter: tx.BalanceAfter,
			BlockedAfter: tx.BlockedAfter,
			Concept:      tx.Concept,
			CreatedAt:    tx.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type walletAdjustRequest struct {
	Kind    string `json:"kind"`
	Action  string `json:"action"`
	Amount  int64  `json:"amount"`
	Concept string `json:"concept"`
}

// WalletAdjust is the operator correction path: balances are fixed by new
// ledger entries, never by editing history.
func (h *Handlers) WalletAdjust(w http.ResponseWriter, r *http.Request) {
	var req walletAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, service.ErrInvalidArgument)
		return
	}

	user, err := h.wallet.Balances(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Concept == "" {
		req.Concept = "Ajuste manual"
	}

	switch {
	case req.Kind == "credits" && req.Action == "add":
		err = h.wallet.CreditCredits(r.Context(), user.ID, req.Amount, req.Concept, service.Refs{})
	case req.Kind == "credits" && req.Action == "subtract":
		err = h.wallet.DebitCredits(r.Context(), user.ID, req.Amount, req.Concept, service.Refs{})
	case req.Kind == "points" && req.Action == "add":
		err = h.wallet.CreditPoints(r.Context(), user.ID, req.Amount, req.Concept, service.Refs{})
	case req.Kind == "points" && req.Action == "subtract":
		err = h.wallet.DebitPoints(r.Context(), user.ID, req.Amount, req.Concept, service.Refs{})
	default:
		err = service.ErrInvalidArgument
	}
	if err != nil {
		writeError(w, err)
		return
	}

	h.Wallet(w, r)
}

func parseTime(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return def
}
