package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
	mediaService   *service.ProductMediaService
	maxUpload      int64
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService, mediaService *service.ProductMediaService, maxUpload int64) *ProductHandler {
	return &ProductHandler{productService: productService, mediaService: mediaService, maxUpload: maxUpload}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), c.Query("type"), c.Query("category"))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, products)
}

// GetCategories handles GET /api/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, categories)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "Product not found")
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "Product not found")
	if !ok {
		return
	}
	var req service.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "Product not found")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	utils.Message(c, http.StatusOK, "Product deleted successfully")
}

// UploadImage handles POST /api/products/:id/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "Product not found")
	if !ok {
		return
	}
	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	product, err := h.mediaService.UploadImage(c.Request.Context(), id, up)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": "Product image uploaded successfully",
		"product": product,
	})
}

// UploadSpecs handles POST /api/products/:id/specs
func (h *ProductHandler) UploadSpecs(c *gin.Context) {
	id, ok := pathID(c, "Product not found")
	if !ok {
		return
	}
	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	product, err := h.mediaService.UploadSpecs(c.Request.Context(), id, up)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{
		"message": "Product specs uploaded successfully",
		"product": product,
	})
}

// readUpload reads the multipart "file" field. The content type is sniffed
// from the bytes rather than trusted from the client.
func (h *ProductHandler) readUpload(c *gin.Context) (service.Upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the upload limit")
			return service.Upload{}, false
		}
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return service.Upload{}, false
	}

	f, err := fh.Open()
	if err != nil {
		handleError(c, err)
		return service.Upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		handleError(c, err)
		return service.Upload{}, false
	}

	return service.Upload{
		Filename:    fh.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, true
}
