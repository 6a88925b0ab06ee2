package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/drezzup/storefront/pkg/catalog"
	"github.com/drezzup/storefront/pkg/models"
	"github.com/drezzup/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listProducts serves one window of the shuffled catalog. The first request
// of a browsing session gets a fresh shuffle seed back; passing it on
// follow-up requests keeps load-more pagination walking the same order.
func (s *Server) listProducts(c *gin.Context) {
	brand := c.DefaultQuery("brand", catalog.BrandAll)
	search := c.Query("search")
	width := intQuery(c, "width", 1280)
	page := intQuery(c, "page", 1)

	seed, err := strconv.ParseInt(c.Query("seed"), 10, 64)
	if err != nil {
		seed = time.Now().UnixNano()
	}

	products, err := s.store.ListProducts(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products. Please try again."})
		return
	}

	shuffled := catalog.Shuffle(products, seed)
	view := catalog.Paginate(catalog.Filter(shuffled, brand, search), width, page)

	c.JSON(http.StatusOK, gin.H{
		"products": view.Products,
		"hasMore":  view.HasMore,
		"page":     view.Page,
		"pageSize": view.PageSize,
		"total":    view.Total,
		"seed":     strconv.FormatInt(seed, 10),
	})
}

func (s *Server) nextProductID(c *gin.Context) {
	id, err := s.store.NextProductID(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to fetch next product id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highest product ID."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextId": id})
}

// createProduct takes a multipart form: name, color, singlePrice,
// comboPrice and an image file. The image goes through background removal
// (best effort), downscaling and the dual-target upload before the product
// document is written.
func (s *Server) createProduct(c *gin.Context) {
	ctx := c.Request.Context()

	name := models.NormalizeTitle(c.PostForm("name"))
	color := models.NormalizeTitle(c.PostForm("color"))

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid product name."})
		return
	}
	if color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid product color."})
		return
	}

	singlePrice, err1 := strconv.ParseFloat(c.PostForm("singlePrice"), 64)
	comboPrice, err2 := strconv.ParseFloat(c.PostForm("comboPrice"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices must be valid numbers."})
		return
	}
	if singlePrice <= 0 || comboPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prices must be greater than zero."})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an image file."})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an image file."})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read the image file."})
		return
	}

	// Background removal is best effort; the original image stands in when
	// the service declines or is not configured.
	processed, err := s.removeBG.Remove(ctx, imageData, fileHeader.Filename)
	if err != nil {
		s.logger.Warn("Background removal failed, using original image", zap.Error(err))
		processed = imageData
	}

	result, err := s.uploader.Upload(ctx, uuid.NewString(), processed)
	if err != nil {
		s.logger.Error("Image upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error uploading image. Please try again."})
		return
	}

	id, err := s.store.NextProductID(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch next product id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch highest product ID."})
		return
	}

	product := models.Product{
		ID:          id,
		Name:        name,
		Color:       color,
		Image:       result.URL,
		SinglePrice: singlePrice,
		ComboPrice:  comboPrice,
	}
	if err := s.store.InsertProduct(ctx, &product); err != nil {
		s.logger.Error("Failed to insert product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading product. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
		"image":   result,
	})
}

type deleteProductRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// deleteProduct removes a catalog entry located by name and color,
// case-insensitively.
func (s *Server) deleteProduct(c *gin.Context) {
	var req deleteProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := models.NormalizeTitle(req.Name)
	color := models.NormalizeTitle(req.Color)
	if name == "" || color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in both fields."})
		return
	}

	ctx := c.Request.Context()
	product, err := s.store.FindProductByNameColor(ctx, name, color)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}
		s.logger.Error("Product lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching product. Please try again."})
		return
	}

	if err := s.store.DeleteProduct(ctx, product.Key); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting product. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": product})
}

func (s *Server) serveImage(c *gin.Context) {
	data, err := s.store.OpenImage(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found."})
			return
		}
		s.logger.Error("Failed to read image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load image."})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
