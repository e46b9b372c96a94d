package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/padelpoint/club-core/internal/service"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError maps service sentinels onto HTTP statuses with the
// user-facing message the frontend shows as-is.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSlotFull):
		writeJSON(w, http.StatusConflict, errorBody{"slot_full", "Clase llena"})
	case errors.Is(err, service.ErrDuplicateBooking):
		writeJSON(w, http.StatusConflict, errorBody{"duplicate_booking", "Ya tienes una reserva en esta clase"})
	case errors.Is(err, service.ErrInsufficientFunds):
		writeJSON(w, http.StatusPaymentRequired, errorBody{"insufficient_funds", "Saldo insuficiente"})
	case errors.Is(err, service.ErrRecycledSeatsPointsOnly):
		writeJSON(w, http.StatusConflict, errorBody{"points_only", "Plazas recicladas: solo con puntos"})
	case errors.Is(err, service.ErrAlreadyCancelled):
		writeJSON(w, http.StatusConflict, errorBody{"already_cancelled", "La reserva ya está cancelada"})
	case errors.Is(err, service.ErrNotBookingOwner):
		writeJSON(w, http.StatusForbidden, errorBody{"not_owner", "La reserva pertenece a otro usuario"})
	case errors.Is(err, service.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody{"invalid_argument", "Solicitud inválida"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{"not_found", "No encontrado"})
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, errorBody{"internal", "Error interno"})
	}
}
