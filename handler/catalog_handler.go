package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogpkg "github.com/mikios34/storefront-backend/catalog"
	"github.com/mikios34/storefront-backend/media"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// CatalogHandler serves products, collections and product images.
type CatalogHandler struct {
	service catalogpkg.Service
	media   media.LocalStore
}

func NewCatalogHandler(svc catalogpkg.Service, store media.LocalStore) *CatalogHandler {
	return &CatalogHandler{service: svc, media: store}
}

// ListProducts supports ?search=, ?collection_id=, ?min_price=, ?max_price=, ?ordering= and paging.
func (h *CatalogHandler) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		pg, ok := parsePage(c)
		if !ok {
			return
		}
		f := catalogpkg.ProductFilter{
			Search:   c.Query("search"),
			Ordering: c.Query("ordering"),
			Limit:    pg.limit(),
			Offset:   pg.offset(),
		}
		if v := c.Query("collection_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection_id"})
				return
			}
			f.CollectionID = &id
		}
		for param, dst := range map[string]**decimal.Decimal{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
			v := c.Query(param)
			if v == "" {
				continue
			}
			d, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
				return
			}
			*dst = &d
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		products, total, err := h.service.ListProducts(ctx, f)
		if err != nil {
			respondError(c, err, "failed to list products")
			return
		}
		c.JSON(http.StatusOK, paginated(c, pg, total, products))
	}
}

type productPayload struct {
	Title        string          `json:"title" binding:"required,max=255"`
	Slug         string          `json:"slug" binding:"required"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	CollectionID uuid.UUID       `json:"collection_id" binding:"required"`
}

func (h *CatalogHandler) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p productPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		product, err := h.service.CreateProduct(ctx, catalogpkg.ProductInput{
			Title:        p.Title,
			Slug:         p.Slug,
			Description:  p.Description,
			UnitPrice:    p.UnitPrice,
			Inventory:    p.Inventory,
			CollectionID: p.CollectionID,
		})
		if err != nil {
			respondError(c, err, "failed to create product")
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func (h *CatalogHandler) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		product, err := h.service.GetProduct(ctx, id)
		if err != nil {
			respondError(c, err, "failed to load product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type productPatchPayload struct {
	Title        *string          `json:"title" binding:"omitempty,max=255"`
	Slug         *string          `json:"slug"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Inventory    *int             `json:"inventory"`
	CollectionID *uuid.UUID       `json:"collection_id"`
}

// UpdateProduct applies a partial update; absent fields keep their value.
func (h *CatalogHandler) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		var p productPatchPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		product, err := h.service.UpdateProduct(ctx, id, catalogpkg.ProductPatch{
			Title:        p.Title,
			Slug:         p.Slug,
			Description:  p.Description,
			UnitPrice:    p.UnitPrice,
			Inventory:    p.Inventory,
			CollectionID: p.CollectionID,
		})
		if err != nil {
			respondError(c, err, "failed to update product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func (h *CatalogHandler) DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteProduct(ctx, id); err != nil {
			respondError(c, err, "failed to delete product")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ExportProducts returns every product as an xlsx download.
func (h *CatalogHandler) ExportProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		var buf bytes.Buffer
		if err := h.service.ExportProducts(ctx, &buf); err != nil {
			respondError(c, err, "failed to export products")
			return
		}
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}

func (h *CatalogHandler) ListCollections() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		collections, err := h.service.ListCollections(ctx)
		if err != nil {
			respondError(c, err, "failed to list collections")
			return
		}
		c.JSON(http.StatusOK, collections)
	}
}

type collectionPayload struct {
	Title             string     `json:"title" binding:"required,max=255"`
	FeaturedProductID *uuid.UUID `json:"featured_product_id"`
}

func (h *CatalogHandler) CreateCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p collectionPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		col, err := h.service.CreateCollection(ctx, catalogpkg.CollectionInput{Title: p.Title, FeaturedProductID: p.FeaturedProductID})
		if err != nil {
			respondError(c, err, "failed to create collection")
			return
		}
		c.JSON(http.StatusCreated, col)
	}
}

func (h *CatalogHandler) GetCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		col, err := h.service.GetCollection(ctx, id)
		if err != nil {
			respondError(c, err, "failed to load collection")
			return
		}
		c.JSON(http.StatusOK, col)
	}
}

func (h *CatalogHandler) UpdateCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		var p collectionPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			badPayload(c, err)
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		col, err := h.service.UpdateCollection(ctx, id, catalogpkg.CollectionInput{Title: p.Title, FeaturedProductID: p.FeaturedProductID})
		if err != nil {
			respondError(c, err, "failed to update collection")
			return
		}
		c.JSON(http.StatusOK, col)
	}
}

func (h *CatalogHandler) DeleteCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteCollection(ctx, id); err != nil {
			respondError(c, err, "failed to delete collection")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *CatalogHandler) ListImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		imgs, err := h.service.ListImages(ctx, productID)
		if err != nil {
			respondError(c, err, "failed to list images")
			return
		}
		c.JSON(http.StatusOK, imgs)
	}
}

// saveUpload stores the multipart "image" field under the product's folder and returns its public URL.
func (h *CatalogHandler) saveUpload(c *gin.Context, productID uuid.UUID) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "detail": err.Error()})
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported image type %q", ext)})
		return "", false
	}
	savePath, url, err := h.media.Prepare(filepath.Join("products", productID.String()), file.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload", "detail": err.Error()})
		return "", false
	}
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image", "detail": err.Error()})
		return "", false
	}
	return url, true
}

func (h *CatalogHandler) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		// nothing touches the upload dir for a missing product
		if _, err := h.service.GetProduct(ctx, productID); err != nil {
			respondError(c, err, "failed to load product")
			return
		}
		url, ok := h.saveUpload(c, productID)
		if !ok {
			return
		}
		img, err := h.service.AddImage(ctx, productID, url)
		if err != nil {
			_ = h.media.Remove(url)
			respondError(c, err, "failed to add image")
			return
		}
		c.JSON(http.StatusCreated, img)
	}
}

func (h *CatalogHandler) GetImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		imageID, ok := pathUUID(c, "image_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		img, err := h.service.GetImage(ctx, productID, imageID)
		if err != nil {
			respondError(c, err, "failed to load image")
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

func (h *CatalogHandler) ReplaceImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		imageID, ok := pathUUID(c, "image_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if _, err := h.service.GetImage(ctx, productID, imageID); err != nil {
			respondError(c, err, "failed to load image")
			return
		}
		url, ok := h.saveUpload(c, productID)
		if !ok {
			return
		}
		img, err := h.service.ReplaceImage(ctx, productID, imageID, url)
		if err != nil {
			_ = h.media.Remove(url)
			respondError(c, err, "failed to replace image")
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

func (h *CatalogHandler) DeleteImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathUUID(c, "id")
		if !ok {
			return
		}
		imageID, ok := pathUUID(c, "image_id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		if err := h.service.DeleteImage(ctx, productID, imageID); err != nil {
			respondError(c, err, "failed to delete image")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
