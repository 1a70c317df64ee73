package input

import (
	"context"

	"newsletter-agent/internal/domain/entity"
)

type LinkExtractor interface {
	Extract(ctx context.Context, content string) []entity.ExtractedLink
}
