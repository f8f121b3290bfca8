// Package chain builds unsigned, chain-specific mint payloads for the user's
// wallet to sign. Nothing here talks to a chain or holds keys.
package chain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	ErrBadEthereumAddress = errors.New("malformed ethereum address")
	ErrBadChecksum        = errors.New("ethereum address checksum mismatch")
)

const mintSignature = "mint(address,uint256,string)"

// EthereumTx is an unsigned transaction for a wallet extension to sign and
// broadcast.
type EthereumTx struct {
	To    string `json:"to"`
	Value string `json:"value"`
	Data  string `json:"data"`
}

// ValidateEthereumAddress accepts 0x-prefixed 20-byte hex addresses. Mixed-case
// addresses must carry a valid EIP-55 checksum; uniform-case addresses pass
// without one.
func ValidateEthereumAddress(addr string) error {
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
		return ErrBadEthereumAddress
	}
	body := addr[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return ErrBadEthereumAddress
	}

	lower := strings.ToLower(body)
	upper := strings.ToUpper(body)
	if body == lower || body == upper {
		return nil
	}

	if checksumAddress(lower) != body {
		return ErrBadChecksum
	}
	return nil
}

// checksumAddress applies EIP-55 casing to a lowercase 40-char hex string.
func checksumAddress(lowerHex string) string {
	hash := keccak256([]byte(lowerHex))
	out := []byte(lowerHex)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		// Uppercase when the corresponding hash nibble is >= 8.
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

// BuildEthereumMintTx encodes calldata for mint(address,uint256,string) on the
// collection contract: recipient, token id, and the card's metadata URI.
func BuildEthereumMintTx(contract, to string, tokenID int64, metadataURI string) (*EthereumTx, error) {
	if err := ValidateEthereumAddress(to); err != nil {
		return nil, err
	}
	if tokenID < 0 {
		return nil, fmt.Errorf("negative token id %d", tokenID)
	}

	data := keccak256([]byte(mintSignature))[:4]
	data = append(data, abiAddress(to)...)
	data = append(data, abiUint256(uint64(tokenID))...)
	// Dynamic string: head slot holds the tail offset (3 head slots = 0x60).
	data = append(data, abiUint256(0x60)...)
	data = append(data, abiString(metadataURI)...)

	return &EthereumTx{
		To:    contract,
		Value: "0",
		Data:  "0x" + hex.EncodeToString(data),
	}, nil
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

func abiAddress(addr string) []byte {
	raw, _ := hex.DecodeString(strings.ToLower(addr[2:]))
	out := make([]byte, 32)
	copy(out[12:], raw)
	return out
}

func abiUint256(v uint64) []byte {
	out := make([]byte, 32)
	for i := 0; i < 8; i++ {
		out[31-i] = byte(v >> (8 * i))
	}
	return out
}

func abiString(s string) []byte {
	out := abiUint256(uint64(len(s)))
	padded := (len(s) + 31) / 32 * 32
	tail := make([]byte, padded)
	copy(tail, s)
	return append(out, tail...)
}
