package products

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"feira/models"

	"github.com/disintegration/imaging"
)

const productUploadDir = "./static/uploads/products"

// handleProductPhotoUpload decodes the uploaded photo, saves the original and
// a 300px-wide thumbnail, and returns their public paths. Returns an error
// when no usable photo was attached.
func handleProductPhotoUpload(r *http.Request, productID string) (string, string, error) {
	file, _, err := r.FormFile("photo")
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumbDir := filepath.Join(productUploadDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := productID + ".jpg"
	originalPath := filepath.Join(productUploadDir, fileName)
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := imaging.Save(img, originalPath); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/uploads/products/" + fileName, "/static/uploads/products/thumb/" + fileName, nil
}

func removeProductPhotos(product models.Product) {
	if product.Photo != "" {
		_ = os.Remove("." + product.Photo)
	}
	if product.Thumb != "" {
		_ = os.Remove("." + product.Thumb)
	}
}
