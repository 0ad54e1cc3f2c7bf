package nakama

import (
	"github.com/heroiclabs/nakama-common/rtapi"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
)

// forwardNotifications hooks the socket's notification callback and forwards
// each pushed notification as JSON. The sink treats pushes as hints only;
// snapshot content stays ground truth.
func (a *GameAdapter) forwardNotifications(sink NotificationSink) {
	previous := a.socket.OnNotification
	a.socket.OnNotification = func(n *rtapi.Notification) {
		raw, err := protojson.Marshal(n)
		if err != nil {
			a.log.Warn("failed to encode notification", zap.Error(err))
		} else {
			sink.HandleNotification(raw)
		}
		if previous != nil {
			previous(n)
		}
	}
}
