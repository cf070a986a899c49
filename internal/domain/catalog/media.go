package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/domain"
)

// MediaOwner identifies which kind of entity a media asset belongs to.
type MediaOwner string

const (
	MediaOwnerPackage MediaOwner = "package"
	MediaOwnerTemple  MediaOwner = "temple"
	MediaOwnerFleet   MediaOwner = "fleet"
)

// IsValid returns true if the owner kind is recognized.
func (m MediaOwner) IsValid() bool {
	return m == MediaOwnerPackage || m == MediaOwnerTemple || m == MediaOwnerFleet
}

// MediaAsset is an uploaded image attached to a catalog entity.
type MediaAsset struct {
	ID        uuid.UUID  `json:"id"`
	OwnerKind MediaOwner `json:"owner_kind"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	URL       string     `json:"url"`
	Caption   string     `json:"caption"`
	SizeBytes int64      `json:"size_bytes"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewMediaAsset records an uploaded image for a catalog entity.
func NewMediaAsset(ownerKind MediaOwner, ownerID uuid.UUID, url, caption string, sizeBytes int64) (*MediaAsset, error) {
	if !ownerKind.IsValid() {
		return nil, domain.NewValidationError("invalid media owner kind: " + string(ownerKind))
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("media owner ID is required")
	}
	if strings.TrimSpace(url) == "" {
		return nil, domain.NewValidationError("media URL is required")
	}

	return &MediaAsset{
		ID:        uuid.New(),
		OwnerKind: ownerKind,
		OwnerID:   ownerID,
		URL:       url,
		Caption:   strings.TrimSpace(caption),
		SizeBytes: sizeBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}
