package payments

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Intent is the server-side stand-in for a provider payment intent. The
// client receives the ClientSecret, pays, and posts it back as the
// confirmation during checkout.
type Intent struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	ClientSecret string    `json:"clientSecret"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IntentSigner creates and verifies HMAC-signed payment intent secrets.
type IntentSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewIntentSigner constructs a signer with the provided secret and TTL.
func NewIntentSigner(secret string, ttl time.Duration) *IntentSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &IntentSigner{secret: []byte(secret), ttl: ttl}
}

// CreateIntent issues an intent for the given amount in minor units.
func (s *IntentSigner) CreateIntent(amount int64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency required")
	}
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("signing secret missing")
	}

	id, err := intentID()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.ttl)

	payload := fmt.Sprintf("%s|%d|%s|%d", id, amount, currency, expiresAt.Unix())
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))

	secret := strings.Join([]string{id, strconv.FormatInt(amount, 10), currency, strconv.FormatInt(expiresAt.Unix(), 10), signature}, ".")
	return &Intent{
		ID:           id,
		Amount:       amount,
		Currency:     currency,
		ClientSecret: secret,
		ExpiresAt:    expiresAt,
	}, nil
}

// VerifyConfirmation checks a client secret against the expected amount
// and currency. It returns the intent ID for the payment record.
func (s *IntentSigner) VerifyConfirmation(clientSecret string, amount int64, currency string) (string, error) {
	parts := strings.Split(clientSecret, ".")
	if len(parts) != 5 {
		return "", fmt.Errorf("invalid confirmation format")
	}
	id, rawAmount, cur, rawExp, signature := parts[0], parts[1], parts[2], parts[3], parts[4]

	payload := fmt.Sprintf("%s|%s|%s|%s", id, rawAmount, cur, rawExp)
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", fmt.Errorf("invalid confirmation signature")
	}

	signedAmount, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse amount: %w", err)
	}
	if signedAmount != amount || cur != currency {
		return "", fmt.Errorf("confirmation does not match the charged amount")
	}

	expUnix, err := strconv.ParseInt(rawExp, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse expiry: %w", err)
	}
	if time.Now().After(time.Unix(expUnix, 0)) {
		return "", fmt.Errorf("confirmation expired")
	}

	return id, nil
}

func intentID() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate intent id: %w", err)
	}
	return "pi_" + hex.EncodeToString(buf), nil
}
