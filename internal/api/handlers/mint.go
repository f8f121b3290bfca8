package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/api/middleware"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/websocket"
)

type MintHandler struct {
	mintService *service.MintService
	hub         *websocket.Hub
}

func NewMintHandler(mintService *service.MintService, hub *websocket.Hub) *MintHandler {
	return &MintHandler{mintService: mintService, hub: hub}
}

type MintRequest struct {
	CardID        string `json:"cardId"`
	WalletAddress string `json:"walletAddress"`
}

type ConfirmMintRequest struct {
	CardID string `json:"cardId"`
	TxHash string `json:"txHash"`
}

type ConfirmMintResponse struct {
	Success bool                `json:"success"`
	Card    CraftedCardResponse `json:"card"`
}

// Build returns an unsigned transaction for the chain named in the route.
func (h *MintHandler) Build(target service.Chain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
			return
		}

		var req MintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
			return
		}

		cardID, err := uuid.Parse(req.CardID)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid card id")
			return
		}

		payload, err := h.mintService.BuildMintTx(r.Context(), target, service.MintInput{
			UserID:        userID,
			CraftedCardID: cardID,
			WalletAddress: req.WalletAddress,
		})
		if err != nil {
			h.respondMintError(w, "MintHandler.Build", err)
			return
		}

		respondJSON(w, http.StatusOK, payload)
	}
}

// Confirm records the wallet-reported transaction hash. Nothing is verified
// on-chain.
func (h *MintHandler) Confirm(target service.Chain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, CodeInvalidRequest, "Unauthorized")
			return
		}

		var req ConfirmMintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body")
			return
		}

		cardID, err := uuid.Parse(req.CardID)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid card id")
			return
		}

		crafted, err := h.mintService.ConfirmMint(r.Context(), target, service.ConfirmMintInput{
			UserID:        userID,
			CraftedCardID: cardID,
			TxHash:        req.TxHash,
		})
		if err != nil {
			h.respondMintError(w, "MintHandler.Confirm", err)
			return
		}

		h.hub.Broadcast(websocket.Event{
			Type: websocket.EventCardMinted,
			Payload: websocket.CardMintedPayload{
				CardID:   crafted.CardID,
				CardName: crafted.Card.Name,
				Chain:    string(target),
			},
		})

		respondJSON(w, http.StatusOK, ConfirmMintResponse{
			Success: true,
			Card:    toCraftedCardResponse(crafted),
		})
	}
}

func (h *MintHandler) respondMintError(w http.ResponseWriter, component string, err error) {
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Crafted card not found")
	case errors.Is(err, domain.ErrAlreadyMinted):
		respondError(w, http.StatusConflict, CodeAlreadyMinted, "Card is already minted")
	case errors.Is(err, domain.ErrInvalidAddress):
		respondError(w, http.StatusBadRequest, CodeInvalidAddress, "Invalid wallet address for this chain")
	case errors.Is(err, domain.ErrInvalidTxHash):
		respondError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid transaction hash")
	default:
		respondInternal(w, component, err)
	}
}
