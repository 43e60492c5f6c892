package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/internal/domain"
	"github.com/swiftpos/backend/internal/repository/redis/converter"
	"github.com/swiftpos/backend/pkg/clients"
	"github.com/swiftpos/backend/pkg/e"
	"github.com/swiftpos/backend/pkg/logger"
)

// StateRepo читает и пишет единственный JSON-документ состояния
// под фиксированным ключом. Никакого слияния и версионирования:
// каждая запись целиком перетирает предыдущую.
type StateRepo struct {
	client *clients.RedisClient
	conv   converter.SnapshotConverter
	cfg    *cfg.StoreCfg
	logger logger.Logger
}

func NewStateRepo(client *clients.RedisClient, conv converter.SnapshotConverter,
	cfg *cfg.StoreCfg, logger logger.Logger) *StateRepo {
	return &StateRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// Load возвращает сохраненный снапшот. Отсутствующий ключ — (nil, nil).
// Нечитаемый документ логируется и также трактуется как отсутствующий.
func (s *StateRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Client.Get(ctx, s.cfg.StorageKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SnapshotModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.logger.Warnf("failed to parse stored POS data, treating as absent: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, nil
	}

	return s.conv.ToDomain(&model), nil
}

// Save сериализует снапшот и перезаписывает документ под ключом. Без TTL.
func (s *StateRepo) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	model := s.conv.ToRedisModel(snapshot)

	data, err := json.Marshal(model)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.cfg.StorageKey, data, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
