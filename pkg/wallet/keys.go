package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// PrivateKeyFromString parses either a WIF or a 32-byte hex encoded private
// key.
func PrivateKeyFromString(str string) (*btcec.PrivateKey, error) {
	if wif, err := btcutil.DecodeWIF(str); err == nil {
		return wif.PrivKey, nil
	}

	buf, err := hex.DecodeString(str)
	if err != nil || len(buf) != btcec.PrivKeyBytesLen {
		return nil, ErrInvalidPrivateKey
	}
	key, _ := btcec.PrivKeyFromBytes(buf)
	return key, nil
}

// PubKeyHash returns the hash160 of the compressed public key of the given
// private key.
func PubKeyHash(key *btcec.PrivateKey) []byte {
	return btcutil.Hash160(key.PubKey().SerializeCompressed())
}

// P2PKHLockingScript returns the standard pay-to-pubkey-hash script locking
// coins to the given key.
func P2PKHLockingScript(key *btcec.PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, ErrNullPrivateKey
	}
	return P2PKHLockingScriptFromHash(PubKeyHash(key))
}

// P2PKHLockingScriptFromHash is like P2PKHLockingScript but takes the pubkey
// hash directly.
func P2PKHLockingScriptFromHash(pkh []byte) ([]byte, error) {
	if len(pkh) != 20 {
		return nil, fmt.Errorf("pubkey hash must be 20 bytes long, got %d", len(pkh))
	}
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pkh).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// ScriptHash returns the electrum script hash of the given locking script,
// that is the reversed sha256 in hex.
func ScriptHash(script []byte) string {
	hash := chainhash.Hash(sha256.Sum256(script))
	return hash.String()
}
