package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/genai"
)

// ShopGenerator produces shop profiles from free-form seller input.
type ShopGenerator interface {
	GenerateShopProfile(ctx context.Context, shopInfo string) (*genai.ShopProfile, error)
}

type ProfileService struct {
	generator ShopGenerator
	logger    *zap.Logger
}

// NewProfileService creates a new shop-profile service
func NewProfileService(generator ShopGenerator, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		generator: generator,
		logger:    logger,
	}
}

// Generate asks the model for a shop profile. When generation fails for any
// reason, the deterministic keyword fallback is returned instead, together
// with the classified error so the caller can surface what went wrong.
func (s *ProfileService) Generate(ctx context.Context, shopInfo string) (*genai.ShopProfile, bool, error) {
	profile, err := s.generator.GenerateShopProfile(ctx, shopInfo)
	if err == nil {
		return profile, false, nil
	}

	s.logger.Warn("Shop profile generation failed, using fallback", zap.Error(err))
	return genai.FallbackShopProfile(shopInfo), true, err
}
