package handlers

import (
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photoserver/models"
	"photoserver/storage"
	"photoserver/utils"
)

// PhotoInfo is the photo as a given viewer sees it
type PhotoInfo struct {
	ID           uint64 `json:"id"`
	OriginalName string `json:"original_name"`
	File         string `json:"file"` // storage key, served via /api/media/
	CreatedAt    int64  `json:"created_at"`
	IsOwned      bool   `json:"isOwned"`
}

type PhotoShareRequest struct {
	Photo    uint64 `json:"photo" binding:"required"`
	SharedTo string `json:"shared_to" binding:"required"`
}

type ShareInfo struct {
	ID        uint64 `json:"id"`
	Photo     uint64 `json:"photo"`
	CreatedAt int64  `json:"created_at"`
}

func photoView(photo *models.Photo, viewer *models.User) PhotoInfo {
	return PhotoInfo{
		ID:           photo.ID,
		OriginalName: photo.OriginalName,
		File:         photo.StorageKey,
		CreatedAt:    photo.CreatedAt,
		IsOwned:      photo.UserID == viewer.ID,
	}
}

func userStorage(user *models.User) storage.StorageAPI {
	if user.BucketID != nil {
		if s := storage.StorageFrom(*user.BucketID); s != nil {
			return s
		}
	}
	return storage.GetDefaultStorage()
}

func PhotoUpload(c *gin.Context, user *models.User) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"no file provided"})
		return
	}
	store := userStorage(user)
	if store == nil {
		c.JSON(http.StatusInternalServerError, StorageResponse)
		return
	}
	ext := utils.SafeExt(file.Filename)
	storageKey := "uploads/" + uuid.NewString() + ext
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"no file provided"})
		return
	}
	defer src.Close()
	// The blob is written before the record exists; a failure in between
	// leaks a blob, never a record without bytes
	size, err := store.Save(storageKey, src)
	if err != nil {
		log.Printf("Photo upload: save error for %s: %v", storageKey, err)
		c.JSON(http.StatusInternalServerError, StorageResponse)
		return
	}
	if err = store.UpdateFile(storageKey, mimeType); err != nil {
		log.Printf("Photo upload: remote store error for %s: %v", storageKey, err)
		store.ReleaseLocalFile(storageKey)
		c.JSON(http.StatusInternalServerError, StorageResponse)
		return
	}
	store.ReleaseLocalFile(storageKey)
	photo, err := models.PhotoCreate(user, store.GetBucket().ID, storageKey, file.Filename, mimeType, size)
	if err != nil {
		log.Printf("Photo upload: DB error: %v", err)
		_ = store.Delete(storageKey)
		_ = store.DeleteRemoteFile(storageKey)
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, photoView(&photo, user))
}

func PhotoList(c *gin.Context, user *models.User) {
	photos, err := models.PhotoListVisible(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	result := []PhotoInfo{}
	for i := range photos {
		result = append(result, photoView(&photos[i], user))
	}
	c.JSON(http.StatusOK, result)
}

func PhotoGet(c *gin.Context, user *models.User) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	photo, err := models.PhotoFindVisible(id, user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	c.JSON(http.StatusOK, photoView(&photo, user))
}

func PhotoDelete(c *gin.Context, user *models.User) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	photo, err := models.PhotoFindOwned(id, user.ID)
	if err != nil {
		// Someone else's photo and a missing photo answer the same
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	// Blob first, record second: a crash in between leaks an orphaned
	// blob instead of leaving a record that cannot be read back
	store := storage.StorageFrom(photo.BucketID)
	if store == nil {
		log.Printf("Photo %d: storage is nil", photo.ID)
		c.JSON(http.StatusInternalServerError, StorageResponse)
		return
	}
	if err = store.Delete(photo.StorageKey); err != nil {
		log.Printf("Photo %d: blob delete error: %s", photo.ID, err.Error())
	}
	if err = store.DeleteRemoteFile(photo.StorageKey); err != nil {
		log.Printf("Photo %d: remote blob delete error: %s", photo.ID, err.Error())
	}
	if err = photo.Delete(); err != nil {
		c.JSON(http.StatusInternalServerError, DBErrorResponse)
		return
	}
	c.Status(http.StatusNoContent)
}

func PhotoShare(c *gin.Context, user *models.User) {
	postReq := PhotoShareRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	share, err := models.SharePhoto(user, postReq.Photo, postReq.SharedTo)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, NotFoundResponse)
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, Response{validationErr.Reason})
		default:
			c.JSON(http.StatusInternalServerError, DBErrorResponse)
		}
		return
	}
	c.JSON(http.StatusCreated, ShareInfo{ID: share.ID, Photo: share.PhotoID, CreatedAt: share.CreatedAt})
}
