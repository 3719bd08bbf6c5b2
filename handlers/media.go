package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"photoserver/models"
	"photoserver/storage"
)

// MediaFetch streams the bytes behind a storage key. Unlike the detail
// endpoints it answers 403 when the record exists but the caller holds no
// grant: the key itself already implies existence. A key without a
// repository record is 404 no matter what sits on disk - the record, not
// the file system, is the authorization anchor.
func MediaFetch(c *gin.Context, user *models.User) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	photo, err := models.PhotoFindByStorageKey(key)
	if err != nil {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	if !photo.CanRead(user.ID) {
		c.JSON(http.StatusForbidden, ForbiddenResponse)
		return
	}
	store := storage.StorageFrom(photo.BucketID)
	if store == nil {
		log.Printf("Photo %d: storage is nil", photo.ID)
		c.JSON(http.StatusInternalServerError, StorageResponse)
		return
	}
	if photo.Bucket.IsS3() {
		// Redirect to the S3 location
		url, expires := photo.GetDownloadURL(store)
		if url == "" {
			c.JSON(http.StatusInternalServerError, StorageResponse)
			return
		}
		maxAge := expires - time.Now().Unix()
		c.Header("cache-control", "private, max-age="+strconv.FormatInt(maxAge, 10))
		c.Redirect(http.StatusFound, url)
		return
	}
	if store.GetSize(photo.StorageKey) < 0 {
		// Integrity fault: a record with no bytes behind it. Same outward
		// 404 as an unknown key, details stay in the server log.
		log.Printf("Photo %d: no blob behind storage key %s", photo.ID, photo.StorageKey)
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	// Content type comes from the stored key's extension, never from the client
	c.Header("content-type", photo.MimeType)
	c.Header("cache-control", "private, max-age=604800")
	store.Serve(photo.StorageKey, c.Request, c.Writer)
}
