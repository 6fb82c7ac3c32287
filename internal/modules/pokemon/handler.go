package pokemon

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pokedex/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	pokemonGroup := v1.Group("/pokemon")
	{
		pokemonGroup.GET("/listing", h.Listing)
		pokemonGroup.GET("/search/:name", h.Search)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	pokemonGroup := protected.Group("/pokemon")
	{
		pokemonGroup.POST("/:id/favorite", h.Favorite)
		pokemonGroup.DELETE("/:id/favorite", h.Unfavorite)
		pokemonGroup.GET("/favorites", h.Favorites)
		pokemonGroup.POST("/group", h.SetGroup)
		pokemonGroup.GET("/group", h.GetGroup)
	}
}

func (h *Handler) Listing(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))
	name := c.Query("name")

	listing, err := h.service.List(c.Request.Context(), page, perPage, name)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LISTING_FAILED", "Failed to list pokemon")
		return
	}

	response.Success(c, http.StatusOK, listing)
}

func (h *Handler) Search(c *gin.Context) {
	raw, err := h.service.Search(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, ErrPokemonNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pokemon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search pokemon")
		return
	}

	// Upstream payload is passed through untouched.
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) Favorite(c *gin.Context) {
	pokemonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || pokemonID < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pokemon ID")
		return
	}
	userID := c.GetInt64("user_id")

	p, err := h.service.SetFavorite(c.Request.Context(), userID, pokemonID)
	if err != nil {
		if errors.Is(err, ErrPokemonNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pokemon not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FAVORITE_FAILED", "Failed to favorite pokemon")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s added to your favorites", p.Name),
	})
}

func (h *Handler) Unfavorite(c *gin.Context) {
	pokemonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || pokemonID < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pokemon ID")
		return
	}
	userID := c.GetInt64("user_id")

	if err := h.service.Unfavorite(c.Request.Context(), userID, pokemonID); err != nil {
		if errors.Is(err, ErrNotFavorite) {
			response.Error(c, http.StatusNotFound, "NOT_FAVORITE", "This pokemon is not in your favorites")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UNFAVORITE_FAILED", "Failed to unfavorite pokemon")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Pokemon removed from favorites",
	})
}

func (h *Handler) Favorites(c *gin.Context) {
	userID := c.GetInt64("user_id")

	favorites, err := h.service.Favorites(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FAVORITES_FAILED", "Failed to list favorites")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"favorites": favorites,
	})
}

func (h *Handler) SetGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Group == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	userID := c.GetInt64("user_id")

	if err := h.service.SetBattleGroup(c.Request.Context(), userID, req.Group); err != nil {
		switch {
		case errors.Is(err, ErrGroupTooLarge):
			response.Error(c, http.StatusBadRequest, "GROUP_TOO_LARGE", "You can select up to 6 pokemon")
		case errors.Is(err, ErrNotInFavorites):
			response.Error(c, http.StatusBadRequest, "NOT_IN_FAVORITES", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "GROUP_FAILED", "Failed to update battle group")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Battle group updated successfully",
	})
}

func (h *Handler) GetGroup(c *gin.Context) {
	userID := c.GetInt64("user_id")

	group, err := h.service.BattleGroup(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GROUP_FAILED", "Failed to list battle group")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"group": group,
	})
}
