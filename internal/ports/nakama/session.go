package nakama

import (
	"context"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-go/v2"
	"go.uber.org/zap"
)

// sessionRefreshMargin re-authenticates this long before the token's expiry
// claim so in-flight calls never race the cutoff.
const sessionRefreshMargin = time.Minute

// freshSession returns the current session, re-authenticating first when the
// token is expired or about to expire. Safe for concurrent callers; overlapping
// RPCs around a refresh all see a consistent session value.
func (a *GameAdapter) freshSession(ctx context.Context) (*nakama.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	exp, err := tokenExpiry(a.session.Token)
	if err != nil {
		a.log.Warn("could not read session expiry, re-authenticating", zap.Error(err))
	} else if time.Until(exp) > sessionRefreshMargin {
		return a.session, nil
	}

	session, err := a.client.AuthenticateDevice(ctx, a.deviceID, false, "")
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	a.session = session
	a.log.Info("session refreshed", zap.String("userId", session.UserId))
	return session, nil
}

// tokenExpiry reads the exp claim from the session JWT. The signature is the
// server's concern; the client only needs the timestamp.
func tokenExpiry(token string) (time.Time, error) {
	parser := &jwt.Parser{}
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("session token has no exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}
