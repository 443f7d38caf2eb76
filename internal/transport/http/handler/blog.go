package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type BlogHandler struct {
	blogService *app.BlogService
}

type CreatePostRequest struct {
	Date    *time.Time `json:"date"`
	Message string     `json:"message" binding:"required"`
}

type UpdatePostRequest struct {
	Message string `json:"message" binding:"required"`
}

func NewBlogHandler(blogService *app.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if _, err := h.blogService.CreatePost(app.CreatePostInput{
		AuthorID: userID,
		Date:     req.Date,
		Message:  req.Message,
	}); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Message(c, http.StatusOK, "Blog post created successfully")
}

func (h *BlogHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.blogService.ListPosts(page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"blogs":       result.Posts,
	})
}

func (h *BlogHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.blogService.UpdatePost(userID, c.Param("id"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Message(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, app.ErrNotPostAuthor):
			response.Message(c, http.StatusForbidden, "You are not authorized to edit this post")
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Post updated successfully",
		"updatedPost": updated,
	})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	if _, err := h.blogService.DeletePost(userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrPostNotFound):
			response.Message(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, app.ErrNotPostAuthor):
			response.Message(c, http.StatusForbidden, "You are not authorized to delete this post")
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Message(c, http.StatusOK, "Post deleted successfully")
}
