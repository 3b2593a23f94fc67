package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/api/middleware"
	"github.com/lankacraft/marketapi/internal/genai"
	"github.com/lankacraft/marketapi/internal/service"
)

// GenerateProfileRequest represents the profile-generation payload
type GenerateProfileRequest struct {
	ShopInfo string `json:"shop_info" binding:"required"`
}

// GenerateProfileResponse carries the generated (or fallback) profile.
type GenerateProfileResponse struct {
	Profile      *genai.ShopProfile `json:"profile"`
	FallbackUsed bool               `json:"fallback_used"`
	Error        string             `json:"error,omitempty"`
}

// HandleGenerateShopProfile handles POST /v1/shop/generate-profile
func HandleGenerateShopProfile(profiles *service.ProfileService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetUserFromContext(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req GenerateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		profile, fallbackUsed, err := profiles.Generate(c.Request.Context(), req.ShopInfo)

		resp := GenerateProfileResponse{
			Profile:      profile,
			FallbackUsed: fallbackUsed,
		}
		if err != nil {
			resp.Error = userFacingGenerationError(err)
		}

		// Generation failures still return the fallback profile; the error
		// message tells the user what went wrong with the model call.
		c.JSON(http.StatusOK, resp)
	}
}

func userFacingGenerationError(err error) string {
	switch {
	case stderrors.Is(err, genai.ErrConfig):
		return "Invalid API key configuration. Please check the Gemini API key."
	case stderrors.Is(err, genai.ErrTimeout):
		return "The request timed out. Please try again."
	case stderrors.Is(err, genai.ErrRateLimited):
		return "Rate limit or quota exceeded. Please wait a moment and try again."
	case stderrors.Is(err, genai.ErrNetwork):
		return "Network connection failed. Please check your internet connection and try again."
	case stderrors.Is(err, genai.ErrParse):
		return "Failed to process the AI response. Please try again."
	case stderrors.Is(err, genai.ErrUnavailable):
		return "AI model temporarily unavailable. Please try again later."
	default:
		return "Failed to generate shop details. Please try again."
	}
}
