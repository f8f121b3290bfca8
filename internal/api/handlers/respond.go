package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Error codes returned to clients. Each maps to one 4xx status; anything
// unexpected becomes a generic 500 with the detail logged server-side.
const (
	CodeNotFound           = "not_found"
	CodeInactive           = "inactive"
	CodeExpired            = "expired"
	CodeAlreadyCollected   = "already_collected"
	CodeTooFar             = "too_far"
	CodeLowAccuracy        = "low_accuracy"
	CodeInvalidCombination = "invalid_combination"
	CodeMixedCardShards    = "mixed_card_shards"
	CodeWrongShardTypes    = "wrong_shard_types"
	CodeAlreadyMinted      = "already_minted"
	CodeInvalidAddress     = "invalid_address"
	CodeInvalidRequest     = "invalid_request"
	CodeInternal           = "internal_error"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers] failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}

func respondInternal(w http.ResponseWriter, component string, err error) {
	log.Printf("ERROR [%s] %v", component, err)
	respondError(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
}
