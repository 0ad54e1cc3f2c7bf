package nakama

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heroiclabs/nakama-go/v2"
	"go.uber.org/zap"

	"cardclient/internal/config"
)

// NotificationSink receives raw JSON notification payloads pushed over the
// realtime socket.
type NotificationSink interface {
	HandleNotification(raw []byte)
}

// GameAdapter is the client-side transport: a Nakama client plus an
// authenticated session and realtime socket, exposing the game's RPC surface
// as the GameService port.
type GameAdapter struct {
	log      *zap.Logger
	client   *nakama.Client
	socket   *nakama.Socket
	deviceID string

	// mu guards session: the poll loop and spawned submissions issue RPCs
	// concurrently, and a token refresh replaces the session.
	mu      sync.Mutex
	session *nakama.Session
}

// Dial authenticates against the server and opens the realtime socket.
// Attach a NotificationSink afterwards with SetSink.
func Dial(ctx context.Context, cfg *config.ClientConfig, log *zap.Logger) (*GameAdapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client := nakama.NewClient(cfg.ServerKey, cfg.ServerHost, cfg.ServerPort, cfg.UseSSL)

	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID = fmt.Sprintf("client_%d", time.Now().UnixNano())
	}

	session, err := client.AuthenticateDevice(ctx, deviceID, true, "")
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate device: %w", err)
	}
	log.Info("authenticated", zap.String("userId", session.UserId))

	socket := client.NewSocket()
	if err := socket.Connect(ctx, session, true); err != nil {
		return nil, fmt.Errorf("failed to connect socket: %w", err)
	}

	return &GameAdapter{
		log:      log,
		client:   client,
		session:  session,
		socket:   socket,
		deviceID: deviceID,
	}, nil
}

// SetSink attaches the receiver for pushed notifications. Call once the
// consumer is fully constructed; pushes arriving before that are dropped,
// which is safe because snapshot polling remains ground truth.
func (a *GameAdapter) SetSink(sink NotificationSink) {
	if sink != nil {
		a.forwardNotifications(sink)
	}
}

// UserID returns the authenticated user id.
func (a *GameAdapter) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.UserId
}

// Close tears down the realtime socket.
func (a *GameAdapter) Close() {
	if a.socket != nil {
		a.socket.Close()
	}
}
