package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/chain"
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/repository"
	"gorm.io/gorm"
)

type Chain string

const (
	ChainTON      Chain = "ton"
	ChainEthereum Chain = "ethereum"
)

type MintService struct {
	craftedRepo repository.CraftedCardRepository
	cfg         *config.Config
}

func NewMintService(craftedRepo repository.CraftedCardRepository, cfg *config.Config) *MintService {
	return &MintService{craftedRepo: craftedRepo, cfg: cfg}
}

type MintInput struct {
	UserID        uuid.UUID
	CraftedCardID uuid.UUID
	WalletAddress string
}

// MintPayload is the unsigned transaction handed to the wallet connector.
// Exactly one of TON or Ethereum is set.
type MintPayload struct {
	Chain    Chain               `json:"chain"`
	TokenID  int64               `json:"tokenId"`
	TON      *chain.TONTx        `json:"ton,omitempty"`
	Ethereum *chain.EthereumTx   `json:"ethereum,omitempty"`
	Card     *domain.CraftedCard `json:"card"`
}

// BuildMintTx validates ownership, mint state and the destination address,
// then encodes the chain-specific unsigned transaction. It never touches the
// chain itself.
func (s *MintService) BuildMintTx(ctx context.Context, target Chain, input MintInput) (*MintPayload, error) {
	crafted, err := s.getOwned(ctx, input.CraftedCardID, input.UserID)
	if err != nil {
		return nil, err
	}
	if crafted.Minted() {
		return nil, domain.ErrAlreadyMinted
	}

	uri := fmt.Sprintf("%s/%d.json", s.cfg.MetadataBaseURL, crafted.Serial)

	payload := &MintPayload{Chain: target, TokenID: crafted.Serial, Card: crafted}
	switch target {
	case ChainEthereum:
		tx, err := chain.BuildEthereumMintTx(s.cfg.EthereumContractAddr, input.WalletAddress, crafted.Serial, uri)
		if err != nil {
			if errors.Is(err, chain.ErrBadEthereumAddress) || errors.Is(err, chain.ErrBadChecksum) {
				return nil, domain.ErrInvalidAddress
			}
			return nil, err
		}
		payload.Ethereum = tx
	case ChainTON:
		modelIdx := slices.Index(domain.CardModels, crafted.Model)
		backgroundIdx := slices.Index(domain.CardBackgrounds, crafted.Background)
		tx, err := chain.BuildTONMintTx(s.cfg.TONCollectionAddress, input.WalletAddress, crafted.Serial, modelIdx, backgroundIdx, uri)
		if err != nil {
			if errors.Is(err, chain.ErrBadTONAddress) {
				return nil, domain.ErrInvalidAddress
			}
			return nil, err
		}
		payload.TON = tx
	default:
		return nil, fmt.Errorf("unsupported chain %q", target)
	}

	return payload, nil
}

type ConfirmMintInput struct {
	UserID        uuid.UUID
	CraftedCardID uuid.UUID
	TxHash        string
}

// ConfirmMint records a wallet-reported transaction hash against the card.
// The hash is taken on trust; no on-chain verification happens here.
func (s *MintService) ConfirmMint(ctx context.Context, target Chain, input ConfirmMintInput) (*domain.CraftedCard, error) {
	crafted, err := s.getOwned(ctx, input.CraftedCardID, input.UserID)
	if err != nil {
		return nil, err
	}
	if crafted.Minted() {
		return nil, domain.ErrAlreadyMinted
	}
	if !validTxHash(target, input.TxHash) {
		return nil, domain.ErrInvalidTxHash
	}

	chainName := string(target)
	now := time.Now()
	crafted.MintChain = &chainName
	crafted.MintTxHash = &input.TxHash
	crafted.MintedAt = &now

	if err := s.craftedRepo.Update(ctx, crafted); err != nil {
		return nil, err
	}
	return crafted, nil
}

func (s *MintService) getOwned(ctx context.Context, id, userID uuid.UUID) (*domain.CraftedCard, error) {
	crafted, err := s.craftedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	if crafted.UserID != userID {
		return nil, domain.ErrCardNotFound
	}
	return crafted, nil
}

func validTxHash(target Chain, hash string) bool {
	switch target {
	case ChainEthereum:
		if len(hash) != 66 || hash[:2] != "0x" {
			return false
		}
		_, err := hex.DecodeString(hash[2:])
		return err == nil
	case ChainTON:
		// TON explorers report the 256-bit hash as 64 hex chars.
		if len(hash) != 64 {
			return false
		}
		_, err := hex.DecodeString(hash)
		return err == nil
	default:
		return false
	}
}
