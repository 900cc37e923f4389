package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"academic-portfolio/internal/domain"
	"academic-portfolio/internal/service"
	"academic-portfolio/internal/storage"
)

// UploadPolicy constrains media uploads.
type UploadPolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// AdminCredentials seeds the first-run admin account.
type AdminCredentials struct {
	Username string
	Email    string
	Password string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	posts   service.PostService
	storage storage.Service
	uploads UploadPolicy
	admin   AdminCredentials
}

func NewHandler(users service.UserService, posts service.PostService, store storage.Service, uploads UploadPolicy, admin AdminCredentials) *Handler {
	return &Handler{
		users:   users,
		posts:   posts,
		storage: store,
		uploads: uploads,
		admin:   admin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/init-admin", h.initAdmin)
			auth.GET("/me", h.requireAuth(), h.me)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.optionalAuth(), h.listPosts)
			posts.GET("/:slug", h.optionalAuth(), h.getPost)
			posts.POST("", h.requireAuth(), h.requireAdmin(), h.createPost)
			posts.POST("/upload-image", h.requireAuth(), h.requireAdmin(), h.uploadImage)
			posts.PUT("/:id", h.requireAuth(), h.requireAdmin(), h.updatePost)
			posts.DELETE("/:id", h.requireAuth(), h.requireAdmin(), h.deletePost)
		}

		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createPostRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Summary       string   `json:"summary"`
	Slug          string   `json:"slug"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image"`
	IsPublished   bool     `json:"is_published"`
}

type updatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Summary       *string   `json:"summary"`
	Slug          *string   `json:"slug"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featured_image"`
	IsPublished   *bool     `json:"is_published"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) initAdmin(c *gin.Context) {
	_, err := h.users.BootstrapAdmin(c.Request.Context(), h.admin.Username, h.admin.Email, h.admin.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "admin user created successfully"})
}

func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) listPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	opts := service.PostListOptions{
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	list, err := h.posts.List(c.Request.Context(), opts, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, postListToResponse(list))
}

func (h *Handler) getPost(c *gin.Context) {
	post, err := h.posts.GetBySlug(c.Request.Context(), c.Param("slug"), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	post, err := h.posts.Create(c.Request.Context(), user.ID, service.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		Summary:       req.Summary,
		Slug:          req.Slug,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), service.PostUpdate{
		Title:         req.Title,
		Content:       req.Content,
		Summary:       req.Summary,
		Slug:          req.Slug,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) uploadImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.uploads.MaxBytes > 0 && file.Size > h.uploads.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !h.extensionAllowed(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file extension not allowed, allowed extensions: %s", strings.Join(h.uploads.AllowedExtensions, ", ")),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	key := fmt.Sprintf("images/%s_%s_%s",
		time.Now().UTC().Format("20060102150405"),
		uuid.NewString()[:8],
		filepath.Base(file.Filename),
	)

	url, err := h.storage.Upload(c.Request.Context(), key, src, file.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *Handler) extensionAllowed(ext string) bool {
	for _, allowed := range h.uploads.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// respondError maps the service error taxonomy to transport statuses.
func respondError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Error()})
	case errors.Is(err, service.ErrUsersExist):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type PostResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Summary       string   `json:"summary,omitempty"`
	Slug          string   `json:"slug"`
	AuthorID      string   `json:"author_id"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	IsPublished   bool     `json:"is_published"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type PostListResponse struct {
	Posts    []PostResponse `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Pages    int            `json:"pages"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		IsAdmin:      user.IsAdmin,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

func postToResponse(post domain.Post) PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Summary:       post.Summary,
		Slug:          post.Slug,
		AuthorID:      post.AuthorID,
		Tags:          tags,
		FeaturedImage: post.FeaturedImage,
		IsPublished:   post.IsPublished,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     post.UpdatedAt.Format(time.RFC3339),
	}
}

func postListToResponse(list *service.PostList) PostListResponse {
	posts := make([]PostResponse, len(list.Posts))
	for i := range list.Posts {
		posts[i] = postToResponse(list.Posts[i])
	}
	return PostListResponse{
		Posts:    posts,
		Total:    list.Total,
		Page:     list.Page,
		PageSize: list.PageSize,
		Pages:    list.Pages,
	}
}
