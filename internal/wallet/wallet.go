// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrInvalidCredentialFormat возвращается, когда секретный ключ не
// соответствует ни одной из поддерживаемых кодировок.
var ErrInvalidCredentialFormat = errors.New("invalid credential format")

const privateKeyLen = 64

// Wallet представляет кошелёк Solana.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// Load создаёт кошелёк из секрета в одной из трёх кодировок:
// JSON-массив байт "[12,34,...]", список чисел через запятую или
// base58-строка. Любой другой ввод — ошибка, нулевой ключ невозможен.
func Load(secret string) (*Wallet, error) {
	raw := strings.TrimSpace(secret)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidCredentialFormat)
	}

	var (
		keyBytes []byte
		err      error
	)
	switch {
	case strings.HasPrefix(raw, "["):
		keyBytes, err = decodeJSONArray(raw)
	case strings.Contains(raw, ","):
		keyBytes, err = decodeNumericList(raw)
	default:
		keyBytes, err = base58.Decode(raw)
		if err != nil {
			err = fmt.Errorf("%w: not a valid base58 string: %v", ErrInvalidCredentialFormat, err)
		}
	}
	if err != nil {
		return nil, err
	}

	if len(keyBytes) != privateKeyLen {
		return nil, fmt.Errorf("%w: expected %d key bytes, got %d",
			ErrInvalidCredentialFormat, privateKeyLen, len(keyBytes))
	}

	privateKey := solana.PrivateKey(keyBytes)
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

func decodeJSONArray(raw string) ([]byte, error) {
	var nums []int
	if err := json.Unmarshal([]byte(raw), &nums); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON byte array: %v", ErrInvalidCredentialFormat, err)
	}
	return bytesFromInts(nums)
}

func decodeNumericList(raw string) ([]byte, error) {
	parts := strings.Split(raw, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed numeric list: %v", ErrInvalidCredentialFormat, err)
		}
		nums = append(nums, n)
	}
	return bytesFromInts(nums)
}

func bytesFromInts(nums []int) ([]byte, error) {
	out := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%w: byte value out of range: %d", ErrInvalidCredentialFormat, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// SignTransaction подписывает транзакцию с помощью приватного ключа кошелька.
func (w *Wallet) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// String возвращает строковое представление кошелька (его публичный ключ).
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
