package regionfile

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pinmap-service/internal/domain"
	"github.com/pinmap-service/internal/domain/repository"
	"go.uber.org/zap"
)

type regionRepository struct {
	regions []domain.Region
}

// regionsFile is the YAML shape of the polygon asset.
type regionsFile struct {
	Regions []domain.Region `yaml:"regions"`
}

// Load reads the static region polygon asset once. The file's region order
// is preserved exactly: first-match resolution depends on it. An empty or
// absent region list is valid (every pin then resolves to no region).
func Load(path string, logger *zap.Logger) (repository.RegionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file %s: %w", path, err)
	}

	var file regionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse regions file %s: %w", path, err)
	}

	for _, region := range file.Regions {
		if len(region.Coords) < 3 {
			logger.Warn("Region polygon has fewer than 3 vertices",
				zap.String("region", region.Name),
				zap.Int("vertices", len(region.Coords)))
		}
	}

	logger.Info("Regions loaded",
		zap.String("path", path),
		zap.Int("count", len(file.Regions)))

	return &regionRepository{regions: file.Regions}, nil
}

// NewStatic builds a repository from an in-memory region list (tests, tools).
func NewStatic(regions []domain.Region) repository.RegionRepository {
	return &regionRepository{regions: regions}
}

func (r *regionRepository) Regions() []domain.Region {
	return r.regions
}
