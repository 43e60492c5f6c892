//go:generate goverter gen github.com/swiftpos/backend/internal/repository/redis/converter

package converter

import (
	"github.com/swiftpos/backend/internal/domain"
)

// goverter:converter
type SnapshotConverter interface {
	ToRedisModel(entity *domain.Snapshot) *SnapshotModel
	ToDomain(model *SnapshotModel) *domain.Snapshot
}
