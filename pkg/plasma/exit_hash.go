package plasma

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// ERC20TransferEventSig is keccak256("Transfer(address,address,uint256)").
var ERC20TransferEventSig = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// ParseHash accepts only 0x-prefixed 32 byte hex strings.
func ParseHash(s string) (common.Hash, error) {
	if len(s) != 2+2*common.HashLength || !has0xPrefix(s) {
		return common.Hash{}, fmt.Errorf("%q: %w", s, ErrInvalidHash)
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%q: %w", s, ErrInvalidHash)
	}
	return common.BytesToHash(b), nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// receiptPathNibbles expands the receipt trie key of a transaction, the RLP
// encoding of its index, into one nibble per byte.
func receiptPathNibbles(txIndex uint) ([]byte, error) {
	path, err := rlp.EncodeToBytes(uint64(txIndex))
	if err != nil {
		return nil, err
	}

	nibbles := make([]byte, 0, len(path)*2)
	for _, b := range path {
		nibbles = append(nibbles, b>>4, b&0x0f)
	}
	return nibbles, nil
}

// ExitHash is the key under which RootChainManager records a processed exit:
// keccak256(uint256(blockNumber) ++ nibbles(rlp(txIndex)) ++ uint256(logIndex)).
func ExitHash(blockNumber uint64, txIndex uint, logIndex uint) (common.Hash, error) {
	nibbles, err := receiptPathNibbles(txIndex)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode receipt path: %w", err)
	}

	return crypto.Keccak256Hash(
		common.BigToHash(new(big.Int).SetUint64(blockNumber)).Bytes(),
		nibbles,
		common.BigToHash(new(big.Int).SetUint64(uint64(logIndex))).Bytes(),
	), nil
}

// logIndexOf returns the position within the receipt of the first log whose
// first topic is sig.
func logIndexOf(receipt *types.Receipt, sig common.Hash) (uint, error) {
	for i, l := range receipt.Logs {
		if len(l.Topics) > 0 && l.Topics[0] == sig {
			return uint(i), nil
		}
	}
	return 0, fmt.Errorf("event %s in tx %s: %w", sig.Hex(), receipt.TxHash.Hex(), ErrLogNotFound)
}
