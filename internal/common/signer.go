package common

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/lotoplay/backend/pkg/crypto"
	"github.com/lotoplay/backend/pkg/xcontext"
)

// Signer produces the tamper-evident signature stored on every ticket. The
// signature is verified out of band when a winning slip is presented.
type Signer interface {
	Sign(ctx context.Context, ticketID string, numbers []string, amount float64, userID string, drawDate *time.Time) string
}

type hmacSigner struct{}

func NewHMACSigner() *hmacSigner {
	return &hmacSigner{}
}

func (s *hmacSigner) Sign(
	ctx context.Context, ticketID string, numbers []string,
	amount float64, userID string, drawDate *time.Time,
) string {
	drawPart := ""
	if drawDate != nil {
		drawPart = fmt.Sprintf("%d", drawDate.Unix())
	}

	payload := strings.Join([]string{
		ticketID,
		strings.Join(numbers, ","),
		fmt.Sprintf("%.2f", amount),
		userID,
		drawPart,
	}, "|")

	secret := xcontext.Configs(ctx).Lottery.SignatureSecret
	return crypto.HMAC(sha256.New, []byte(payload), []byte(secret))
}
