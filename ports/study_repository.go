package ports

import (
	"context"

	"goresample/domain/core"
	"goresample/domain/resample"
)

// StudyRepositoryPort persists resampling study artifacts
type StudyRepositoryPort interface {
	Save(ctx context.Context, artifact *resample.StudyArtifact) error
	Get(ctx context.Context, id core.StudyID) (*resample.StudyArtifact, error)
	ListByKind(ctx context.Context, kind resample.StudyKind, limit int) ([]*resample.StudyArtifact, error)
}
