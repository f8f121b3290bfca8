package service_test

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/qora-app/qora-server/internal/domain"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ethWallet = "0x00112233445566778899aabbccddeeff00112233"
	ethTxHash = "0xab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"
	tonTxHash = "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"
)

// tonWallet builds a valid user-friendly address the way a wallet renders one:
// tag, workchain, account id, CRC16/XMODEM trailer, base64url.
func tonWallet() string {
	raw := make([]byte, 36)
	raw[0] = 0x11
	raw[1] = 0x00
	for i := 2; i < 34; i++ {
		raw[i] = byte(i * 3)
	}
	var crc uint16
	for _, b := range raw[:34] {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	binary.BigEndian.PutUint16(raw[34:36], crc)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// craftCard walks a user through collect and craft, returning the crafted
// card ready to mint.
func craftCard(t *testing.T, ts *testutil.TestServer, user *domain.User) *domain.CraftedCard {
	t.Helper()

	card := ts.NewCard().Build(t)
	entryIDs := collectLabels(t, ts, user, card,
		domain.ShardLabelA, domain.ShardLabelB, domain.ShardLabelC)

	crafted, err := ts.Services.Craft.Craft(context.Background(), service.CraftInput{
		UserID:        user.ID,
		ShardEntryIDs: entryIDs,
	})
	require.NoError(t, err)
	return crafted
}

func TestBuildMintTx(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	t.Run("builds ethereum payload", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		payload, err := ts.Services.Mint.BuildMintTx(ctx, service.ChainEthereum, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: ethWallet,
		})
		require.NoError(t, err)

		assert.Equal(t, service.ChainEthereum, payload.Chain)
		assert.Equal(t, crafted.Serial, payload.TokenID)
		assert.Nil(t, payload.TON)
		require.NotNil(t, payload.Ethereum)
		assert.Equal(t, ts.Config.EthereumContractAddr, payload.Ethereum.To)
		assert.Equal(t, "0", payload.Ethereum.Value)
		assert.True(t, strings.HasPrefix(payload.Ethereum.Data, "0x"))
		// selector + 3 head slots at minimum
		assert.Greater(t, len(payload.Ethereum.Data), 2+8+3*64)
	})

	t.Run("builds ton payload", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		payload, err := ts.Services.Mint.BuildMintTx(ctx, service.ChainTON, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: tonWallet(),
		})
		require.NoError(t, err)

		assert.Equal(t, service.ChainTON, payload.Chain)
		assert.Nil(t, payload.Ethereum)
		require.NotNil(t, payload.TON)
		assert.Equal(t, ts.Config.TONCollectionAddress, payload.TON.To)

		boc, err := base64.StdEncoding.DecodeString(payload.TON.Payload)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xb5, 0xee, 0x9c, 0x72}, boc[:4])
	})

	t.Run("rejects malformed wallet address", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		_, err := ts.Services.Mint.BuildMintTx(ctx, service.ChainEthereum, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: "0xdeadbeef",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)

		_, err = ts.Services.Mint.BuildMintTx(ctx, service.ChainTON, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: "not-a-ton-address",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("rejects someone else's card", func(t *testing.T) {
		ts.DB.Truncate(t)
		owner := ts.NewUser().Build(t)
		other := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, owner)

		_, err := ts.Services.Mint.BuildMintTx(ctx, service.ChainEthereum, service.MintInput{
			UserID:        other.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: ethWallet,
		})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("rejects unknown card", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)

		_, err := ts.Services.Mint.BuildMintTx(ctx, service.ChainEthereum, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: uuid.New(),
			WalletAddress: ethWallet,
		})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("rejects already minted card", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		_, err := ts.Services.Mint.ConfirmMint(ctx, service.ChainEthereum, service.ConfirmMintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			TxHash:        ethTxHash,
		})
		require.NoError(t, err)

		_, err = ts.Services.Mint.BuildMintTx(ctx, service.ChainEthereum, service.MintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			WalletAddress: ethWallet,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyMinted)
	})
}

func TestConfirmMint(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	t.Run("records the reported transaction hash", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		result, err := ts.Services.Mint.ConfirmMint(ctx, service.ChainTON, service.ConfirmMintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			TxHash:        tonTxHash,
		})
		require.NoError(t, err)

		require.NotNil(t, result.MintChain)
		assert.Equal(t, "ton", *result.MintChain)
		require.NotNil(t, result.MintTxHash)
		assert.Equal(t, tonTxHash, *result.MintTxHash)
		assert.NotNil(t, result.MintedAt)

		stored, err := ts.Repos.CraftedCard.GetByID(ctx, crafted.ID)
		require.NoError(t, err)
		assert.True(t, stored.Minted())
	})

	t.Run("rejects a second confirmation", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		input := service.ConfirmMintInput{
			UserID:        user.ID,
			CraftedCardID: crafted.ID,
			TxHash:        ethTxHash,
		}

		_, err := ts.Services.Mint.ConfirmMint(ctx, service.ChainEthereum, input)
		require.NoError(t, err)

		_, err = ts.Services.Mint.ConfirmMint(ctx, service.ChainEthereum, input)
		assert.ErrorIs(t, err, domain.ErrAlreadyMinted)
	})

	t.Run("rejects malformed transaction hashes", func(t *testing.T) {
		ts.DB.Truncate(t)
		user := ts.NewUser().Build(t)
		crafted := craftCard(t, ts, user)

		cases := []struct {
			name  string
			chain service.Chain
			hash  string
		}{
			{"ethereum hash without prefix", service.ChainEthereum, tonTxHash},
			{"ethereum hash too short", service.ChainEthereum, "0xab12"},
			{"ethereum hash not hex", service.ChainEthereum, "0x" + strings.Repeat("zz", 32)},
			{"ton hash with prefix", service.ChainTON, ethTxHash},
			{"ton hash too short", service.ChainTON, "ab12"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ts.Services.Mint.ConfirmMint(ctx, tc.chain, service.ConfirmMintInput{
					UserID:        user.ID,
					CraftedCardID: crafted.ID,
					TxHash:        tc.hash,
				})
				assert.ErrorIs(t, err, domain.ErrInvalidTxHash)
			})
		}
	})
}
