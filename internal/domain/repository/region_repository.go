package repository

import "github.com/pinmap-service/internal/domain"

// RegionRepository loads the static, ordered region polygon list. Regions
// never change at runtime; the list order drives first-match resolution.
type RegionRepository interface {
	Regions() []domain.Region
}
