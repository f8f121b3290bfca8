package chain

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrBadTONAddress = errors.New("malformed TON address")
	ErrURITooLong    = errors.New("metadata URI does not fit a single content cell")
)

// opMintItem is the collection-contract opcode for deploying a new NFT item.
const opMintItem = 1

// mintForwardAmount covers item deploy fees, in nanotons.
const mintForwardAmount = "50000000"

// TONTx is an unsigned message for a TON wallet connector. Payload is a
// base64-encoded bag of cells.
type TONTx struct {
	To      string `json:"to"`
	Amount  string `json:"amount"`
	Payload string `json:"payload"`
}

// parseTONAddress decodes a user-friendly address and returns workchain and
// account id. Both the base64url and classic base64 alphabets are accepted.
func parseTONAddress(addr string) (byte, [32]byte, error) {
	var account [32]byte

	raw, err := base64.RawURLEncoding.DecodeString(addr)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(addr)
	}
	if err != nil || len(raw) != 36 {
		return 0, account, ErrBadTONAddress
	}

	tag := raw[0] &^ 0x80 // strip the testnet-only flag
	if tag != 0x11 && tag != 0x51 {
		return 0, account, ErrBadTONAddress
	}
	if raw[1] != 0x00 && raw[1] != 0xff {
		return 0, account, ErrBadTONAddress
	}
	if crc16XModem(raw[:34]) != binary.BigEndian.Uint16(raw[34:36]) {
		return 0, account, ErrBadTONAddress
	}

	copy(account[:], raw[2:34])
	return raw[1], account, nil
}

// ValidateTONAddress checks the user-friendly form: 36 bytes of base64 with a
// bounceable/non-bounceable tag, workchain byte and CRC16 trailer.
func ValidateTONAddress(addr string) error {
	_, _, err := parseTONAddress(addr)
	return err
}

// BuildTONMintTx builds the mint message body: opcode, token id, owner
// address, cosmetic attribute indices, and a referenced off-chain content
// cell holding the metadata URI.
func BuildTONMintTx(contract, owner string, tokenID int64, modelIdx, backgroundIdx int, metadataURI string) (*TONTx, error) {
	workchain, account, err := parseTONAddress(owner)
	if err != nil {
		return nil, err
	}
	if tokenID < 0 {
		return nil, fmt.Errorf("negative token id %d", tokenID)
	}

	content := NewCell()
	// 0x01 prefix marks off-chain content per the TEP-64 token data standard.
	if err := content.StoreUint(0x01, 8); err != nil {
		return nil, err
	}
	if content.BitLen()+len(metadataURI)*8 > maxCellBits {
		return nil, ErrURITooLong
	}
	if err := content.StoreBytes([]byte(metadataURI)); err != nil {
		return nil, err
	}

	body := NewCell()
	if err := body.StoreUint(opMintItem, 32); err != nil {
		return nil, err
	}
	if err := body.StoreUint(0, 64); err != nil { // query id
		return nil, err
	}
	if err := body.StoreUint(uint64(tokenID), 64); err != nil {
		return nil, err
	}
	if err := body.StoreAddress(workchain, account); err != nil {
		return nil, err
	}
	if err := body.StoreUint(uint64(modelIdx), 8); err != nil {
		return nil, err
	}
	if err := body.StoreUint(uint64(backgroundIdx), 8); err != nil {
		return nil, err
	}
	if err := body.StoreRef(content); err != nil {
		return nil, err
	}

	return &TONTx{
		To:      contract,
		Amount:  mintForwardAmount,
		Payload: base64.StdEncoding.EncodeToString(body.BOC()),
	}, nil
}

// crc16XModem is the CRC16/XMODEM variant TON uses for address checksums.
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
