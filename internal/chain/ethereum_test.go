package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEthereumAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr error
	}{
		{
			name: "valid EIP-55 checksummed",
			addr: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name: "all lowercase accepted without checksum",
			addr: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		},
		{
			name: "all uppercase accepted without checksum",
			addr: "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED",
		},
		{
			name:    "bad checksum casing",
			addr:    "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1beAed",
			wantErr: ErrBadChecksum,
		},
		{
			name:    "missing prefix",
			addr:    "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			wantErr: ErrBadEthereumAddress,
		},
		{
			name:    "too short",
			addr:    "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA",
			wantErr: ErrBadEthereumAddress,
		},
		{
			name:    "non-hex characters",
			addr:    "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAzz",
			wantErr: ErrBadEthereumAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEthereumAddress(tt.addr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildEthereumMintTx(t *testing.T) {
	contract := "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"
	to := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	tx, err := BuildEthereumMintTx(contract, to, 7, "https://meta.qora.app/cards/7.json")
	require.NoError(t, err)

	assert.Equal(t, contract, tx.To)
	assert.Equal(t, "0", tx.Value)
	require.True(t, strings.HasPrefix(tx.Data, "0x"))

	data := tx.Data[2:]
	// selector + 3 head slots + length slot + 2 tail slots (34-byte string)
	assert.Len(t, data, 2*(4+32*3+32+64))
	// recipient sits right-aligned in the first argument slot
	assert.Equal(t, strings.ToLower(to[2:]), data[8+24:8+64])
	// token id in the second slot
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000007", data[8+64:8+128])
	// string offset in the third slot
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000060", data[8+128:8+192])
}

func TestBuildEthereumMintTx_InvalidRecipient(t *testing.T) {
	_, err := BuildEthereumMintTx("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", "not-an-address", 1, "uri")
	assert.ErrorIs(t, err, ErrBadEthereumAddress)
}

func TestBuildEthereumMintTx_Deterministic(t *testing.T) {
	a, err := BuildEthereumMintTx("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", 42, "u")
	require.NoError(t, err)
	b, err := BuildEthereumMintTx("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", 42, "u")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
