package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wishlist filter always comes from the verified session, never from a
// client-supplied value.

// @Router /wishlist [get]
// @Param email query string true "Must equal the session identity"
// @Success 200 {array} models.WishlistItem
func (s *Server) listWishlist(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	items, err := s.wishlistService.List(c.Request.Context(), sessionData.Email())
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to list wishlist")
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Router /blog-from-wishlist/{id} [get]
// @Success 200 {object} models.WishlistItem "null when not found"
func (s *Server) getWishlistItem(c *gin.Context) {
	item, err := s.wishlistService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to get wishlist entry")
		return
	}

	c.JSON(http.StatusOK, item)
}

// @Router /add-to-wishlist [post]
// @Success 200 {object} models.InsertResult
func (s *Server) addToWishlist(c *gin.Context) {
	var entry map[string]any
	if err := c.ShouldBindJSON(&entry); err != nil || entry == nil {
		respondWithError(c, s.logger, http.StatusBadRequest, err, msgInvalidBody)
		return
	}

	result, err := s.wishlistService.Add(c.Request.Context(), entry)
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to add wishlist entry")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Router /remove-from-wishlist/{id} [delete]
// @Param email query string true "Must equal the session identity"
// @Success 200 {object} models.DeleteResult
func (s *Server) removeFromWishlist(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	result, err := s.wishlistService.Remove(c.Request.Context(), c.Param("id"), sessionData.Email())
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to remove wishlist entry")
		return
	}

	c.JSON(http.StatusOK, result)
}
