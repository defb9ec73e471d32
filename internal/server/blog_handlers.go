package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogwave/blogwave/internal/blogs"
)

// @Router /all-blogs [get]
// @Success 200 {array} models.Blog
func (s *Server) listBlogs(c *gin.Context) {
	result, err := s.blogsService.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to list blogs")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Router /all-blogs/search [get]
// @Param search query string false "Title substring (case-insensitive)"
// @Param sort query string false "asc, anything else is descending"
// @Success 200 {array} models.Blog
func (s *Server) searchBlogs(c *gin.Context) {
	order := blogs.ParseSortOrder(c.Query("sort"))

	result, err := s.blogsService.Search(c.Request.Context(), c.Query("search"), order)
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to search blogs")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Router /blog/{id} [get]
// @Success 200 {object} models.Blog "null when not found"
func (s *Server) getBlog(c *gin.Context) {
	blog, err := s.blogsService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to get blog")
		return
	}

	c.JSON(http.StatusOK, blog)
}

// @Router /add-blog [post]
// @Param email query string true "Must equal the session identity"
// @Param body body blogs.BlogFields true "Blog"
// @Success 200 {object} models.InsertResult
func (s *Server) createBlog(c *gin.Context) {
	var fields blogs.BlogFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, err, msgInvalidBody)
		return
	}

	sessionData, _ := GetSessionData(c)

	result, err := s.blogsService.Create(c.Request.Context(), fields, sessionData.Email())
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to create blog")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Router /update-blog/{id} [patch]
// @Param email query string true "Must equal the session identity"
// @Param body body blogs.BlogFields true "Replacement fields"
// @Success 200 {object} models.UpdateResult
func (s *Server) updateBlog(c *gin.Context) {
	var fields blogs.BlogFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondWithError(c, s.logger, http.StatusBadRequest, err, msgInvalidBody)
		return
	}

	result, err := s.blogsService.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondInternalError(c, s.logger, err, "Failed to update blog")
		return
	}

	c.JSON(http.StatusOK, result)
}
