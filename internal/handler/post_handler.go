package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// PostHandler handles post and comment endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest is the body of addPost and updatePost.
// On update an empty field keeps its stored value.
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentRequest is the body of addComment.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// PostsResponse lists posts with resolved names.
type PostsResponse struct {
	Success bool             `json:"success"`
	Posts   []model.PostView `json:"posts"`
}

// PostViewResponse wraps a single post with resolved names.
type PostViewResponse struct {
	Success bool            `json:"success"`
	Post    *model.PostView `json:"post"`
}

// CreatedPostResponse wraps a freshly created post.
type CreatedPostResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

// UpdatedPostResponse wraps a post after a mutation.
type UpdatedPostResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	UpdatedPost *model.Post `json:"updatedPost"`
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} PostsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/getPosts [get]
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, PostsResponse{Success: true, Posts: posts})
}

// GetPost godoc
// @Summary Get a post with its comments
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} PostViewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/getPost/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, PostViewResponse{Success: true, Post: post})
}

// AddPost godoc
// @Summary Create a post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post"
// @Success 201 {object} CreatedPostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/addPost [post]
func (h *PostHandler) AddPost(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), req.Title, req.Content, claims.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, CreatedPostResponse{
		Success: true,
		Message: "Post created successfully",
		Post:    post,
	})
}

// UpdatePost godoc
// @Summary Update title and/or content of a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body PostRequest true "Fields to change"
// @Success 200 {object} UpdatedPostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/updatePost/{id} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	if _, err := callerClaims(c); err != nil {
		return err
	}
	var req PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UpdatedPostResponse{
		Success:     true,
		Message:     "Post updated successfully",
		UpdatedPost: post,
	})
}

// DeletePost godoc
// @Summary Delete a post and its comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/deletePost/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	if _, err := callerClaims(c); err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Post deleted successfully",
	})
}

// AddComment godoc
// @Summary Append a comment by the caller
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body CommentRequest true "Comment"
// @Success 200 {object} UpdatedPostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/addComment/{id} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.AddComment(c.Request().Context(), c.Param("id"), claims.UserID, req.Comment)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UpdatedPostResponse{
		Success:     true,
		Message:     "Comment added successfully",
		UpdatedPost: post,
	})
}

// DeleteComment godoc
// @Summary Delete a comment by its id
// @Description An id matching no comment succeeds and returns the post unchanged.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} UpdatedPostResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/deleteComment/{id}/{commentId} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	if _, err := callerClaims(c); err != nil {
		return err
	}

	post, err := h.postService.DeleteCommentByID(c.Request().Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UpdatedPostResponse{
		Success:     true,
		Message:     "Comment deleted successfully",
		UpdatedPost: post,
	})
}

// DeleteCommentAt godoc
// @Summary Delete a comment by its zero-based position
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param index path int true "Comment position"
// @Success 200 {object} UpdatedPostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/deleteComment/{id}/index/{index} [delete]
func (h *PostHandler) DeleteCommentAt(c echo.Context) error {
	if _, err := callerClaims(c); err != nil {
		return err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return errorResponse(errors.Validation("comment index must be an integer"))
	}

	post, err := h.postService.DeleteCommentByIndex(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UpdatedPostResponse{
		Success:     true,
		Message:     "Comment deleted successfully",
		UpdatedPost: post,
	})
}
