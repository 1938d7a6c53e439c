package notify

import (
	"elevate/internal/providers"
	"elevate/internal/structures"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func NewCrossContextChannel(conf *structures.Config, logger providers.Logger, origin string) CrossContextChannel {
	if !conf.Sync.Enabled {
		logger.Infof(providers.TypeSync, "Cross-context sync disabled")
		return NoopCrossContext{}
	}
	logger.Infof(providers.TypeSync, "Cross-context sync via redis %s channel %s", conf.Sync.RedisAddr, conf.Sync.Channel)
	client := redis.NewClient(&redis.Options{Addr: conf.Sync.RedisAddr})
	return NewRedisChannel(client, conf.Sync.Channel, origin, logger)
}

// NewContextOrigin identifies this process among the contexts sharing a
// backend.
func NewContextOrigin() string {
	return uuid.NewString()
}

func NewNotifier(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *ChangeNotifier {
	origin := NewContextOrigin()
	return NewChangeNotifier(origin, NewLocalChannel(), NewCrossContextChannel(conf, logger, origin), logger, metrics)
}
