// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/logger"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/utils"
	"github.com/agtMorpheus/cautious-potato-sub004/internal/validators"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

var errNoUserID = errors.New("no user ID was given")

func (h *Handler) listContracts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var updatedAfter *time.Time
	if raw := r.URL.Query().Get("updatedAfter"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Err(err).Str("updatedAfter", raw).Msg("invalid updatedAfter")
			http.Error(w, "updatedAfter must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		updatedAfter = &parsed
	}

	contracts, err := h.services.ContractService.ListContracts(ctx, userID, updatedAfter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listContracts").Msg("error listing contracts")
		writeError(w, err)
		return
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}

	utils.WriteJSON(w, models.ContractsResponse{Contracts: contracts}, http.StatusOK)
}

func (h *Handler) getContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	contract, err := h.services.ContractService.GetContract(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.getContract").Send()
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, contract, http.StatusOK)
}

func (h *Handler) createContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var contract models.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		log.Err(err).Str("func", "*Handler.createContract").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ContractService.CreateContract(ctx, userID, contract)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createContract").Str("contract_id", contract.ID).Msg("error creating contract")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var contract models.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		log.Err(err).Str("func", "*Handler.updateContract").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if contract.ID == "" {
		contract.ID = id
	}
	if contract.ID != id {
		http.Error(w, "contract id does not match the path", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ContractService.UpdateContract(ctx, userID, contract)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateContract").Str("contract_id", id).Msg("error updating contract")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) bulkUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var request models.BulkUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.bulkUpsert").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, request, validators.FieldContracts); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.services.ContractService.BulkUpsert(ctx, userID, request.Contracts)
	if err != nil {
		log.Err(err).Str("func", "*Handler.bulkUpsert").Int("records", len(request.Contracts)).Msg("bulk upsert failed")
		writeError(w, err)
		return
	}
	if response.Errors == nil {
		response.Errors = []models.BulkUpsertError{}
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// userID reads the authenticated user set by the auth middleware.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Err(errNoUserID).Str("path", r.URL.Path).Send()
		http.Error(w, errNoUserID.Error(), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}
