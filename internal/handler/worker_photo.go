package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const maxPhotoBytes = 5 << 20 // 5 MB upload cap

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadPhoto accepts a multipart "photo" file, square-crops it to 400x400
// and stores it as JPEG under the upload dir. A previous photo file is
// removed so orphans do not pile up.
func (h *WorkerHandler) UploadPhoto(c echo.Context) error {
	workerID, err := getWorkerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Photo file is required"})
	}
	if fh.Size > maxPhotoBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Photo must be smaller than 5MB"})
	}
	if ct := fh.Header.Get("Content-Type"); !allowedPhotoTypes[ct] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Photo must be JPEG, PNG, or WebP"})
	}

	src, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Msg("photo: open upload failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload photo"})
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Photo must be JPEG, PNG, or WebP"})
	}
	thumb := imaging.Fill(img, 400, 400, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		log.Error().Err(err).Msg("photo: upload dir create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload photo"})
	}

	name := fmt.Sprintf("worker_%d_%d.jpg", workerID, time.Now().UnixNano())
	dst := filepath.Join(h.Cfg.UploadDir, name)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(85)); err != nil {
		log.Error().Err(err).Msg("photo: save failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload photo"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	old, err := h.Workers.PhotoURL(ctx, workerID)
	if err != nil {
		log.Error().Err(err).Msg("photo: previous url lookup failed")
	}

	url := "/uploads/" + name
	if err := h.Workers.UpdatePhotoURL(ctx, workerID, url); err != nil {
		_ = os.Remove(dst)
		log.Error().Err(err).Msg("photo: url update failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload photo"})
	}

	if old != nil && strings.HasPrefix(*old, "/uploads/") {
		if rmErr := os.Remove(filepath.Join(h.Cfg.UploadDir, filepath.Base(*old))); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("file", *old).Msg("photo: old file remove failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":           "Photo uploaded successfully",
		"profile_photo_url": url,
	})
}
