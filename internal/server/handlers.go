package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rubiojr/postos/internal/store"
	"github.com/rubiojr/postos/pkg/api"
)

const (
	maxBodyBytes = 1 << 20

	// replayedHeader is set when an idempotency key was already applied.
	replayedHeader = "Idempotent-Replayed"
)

type handlers struct {
	storage *store.Storage
	log     *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) listStations(w http.ResponseWriter, r *http.Request) {
	list, err := h.storage.ListStations(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) getStation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	st, err := h.storage.GetStation(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handlers) createStation(w http.ResponseWriter, r *http.Request) {
	var in api.NewStation
	if !decode(w, r, &in) {
		return
	}
	for _, v := range []string{in.Name, in.City, in.State, in.Address} {
		if strings.TrimSpace(v) == "" {
			writeError(w, http.StatusBadRequest, "name, city, state and address are required")
			return
		}
	}

	st, err := h.storage.CreateStation(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *handlers) updatePrices(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Prices []api.PriceUpdate `json:"prices"`
	}
	if !decode(w, r, &in) {
		return
	}
	for _, p := range in.Prices {
		if err := checkPrice(p.Name, p.Value); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	applied, err := h.storage.UpdatePrices(r.Context(), idempotencyKey(r), in.Prices)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeAck(w, http.StatusOK, applied)
}

// newPriceBody accepts the amount as "value" or, from older clients, "price".
type newPriceBody struct {
	Name      string   `json:"name"`
	Value     *float64 `json:"value"`
	Price     *float64 `json:"price"`
	StationID int64    `json:"station_id"`
}

func (b newPriceBody) amount() (float64, bool) {
	if b.Value != nil {
		return *b.Value, true
	}
	if b.Price != nil {
		return *b.Price, true
	}
	return 0, false
}

func (h *handlers) createPrices(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Prices []newPriceBody `json:"prices"`
	}
	if !decode(w, r, &in) {
		return
	}

	prices := make([]api.NewPrice, 0, len(in.Prices))
	for _, p := range in.Prices {
		v, ok := p.amount()
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("price %q has no value", p.Name))
			return
		}
		if err := checkPrice(p.Name, v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		prices = append(prices, api.NewPrice{Name: p.Name, Value: v, StationID: p.StationID})
	}

	applied, err := h.storage.CreatePrices(r.Context(), idempotencyKey(r), prices)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeAck(w, http.StatusCreated, applied)
}

func (h *handlers) deletePrices(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PriceIDs []int64 `json:"price_ids"`
	}
	if !decode(w, r, &in) {
		return
	}

	applied, err := h.storage.DeletePrices(r.Context(), idempotencyKey(r), in.PriceIDs)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeAck(w, http.StatusOK, applied)
}

func (h *handlers) myReactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	reactions, err := h.storage.MyReactions(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reactions)
}

func (h *handlers) createReaction(w http.ResponseWriter, r *http.Request) {
	var in api.NewReaction
	if !decode(w, r, &in) {
		return
	}
	reaction, err := h.storage.CreateReaction(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reaction)
}

func (h *handlers) deleteReaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.storage.DeleteReaction(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidReaction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func checkPrice(name string, value float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("price name is required")
	}
	if value < 0 {
		return fmt.Errorf("price %q must not be negative", name)
	}
	return nil
}

func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(api.IdempotencyHeader))
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeAck(w http.ResponseWriter, status int, applied bool) {
	if !applied {
		w.Header().Set(replayedHeader, "true")
	}
	w.WriteHeader(status)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
