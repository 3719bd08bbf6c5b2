package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"photoserver/db"
	"photoserver/storage"
)

const (
	presignViewURLFor      = time.Hour * 24 * 7
	presignValidAtLeastFor = time.Minute * 30
)

type Photo struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"not null;index:user_photo_created,priority:1"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	// StorageKey is assigned once at upload and never changes
	StorageKey   string `gorm:"type:varchar(300);index:uniq_storage_key,unique;not null"`
	OriginalName string `gorm:"type:varchar(255)"` // untrusted display data, echoed verbatim
	MimeType     string `gorm:"type:varchar(50)"`  // derived from the storage key extension
	Size         int64
	CreatedAt    int64 `gorm:"index:user_photo_created,priority:2"`
	BucketID     uint64
	Bucket       storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Shares       []PhotoShare   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	PresignedUntil int64
	PresignedURL   string `gorm:"type:varchar(2000)"`
}

//
// Access verdicts. Every entry point resolves the photo record first and
// then asks exactly one of these.
//

// CanRead is true for the owner and for users holding a share grant.
func (p *Photo) CanRead(userID uint64) bool {
	if p.UserID == userID {
		return true
	}
	var count int64
	db.Instance.Model(&PhotoShare{}).
		Where("photo_id = ? AND user_id = ?", p.ID, userID).
		Count(&count)
	return count > 0
}

// CanDelete is owner-only. A grant never implies delete rights.
func (p *Photo) CanDelete(userID uint64) bool {
	return p.UserID == userID
}

// CanShare is owner-only. A grantee cannot re-share.
func (p *Photo) CanShare(userID uint64) bool {
	return p.UserID == userID
}

func PhotoCreate(user *User, bucketID uint64, storageKey, originalName, mimeType string, size int64) (Photo, error) {
	photo := Photo{
		UserID:       user.ID,
		BucketID:     bucketID,
		StorageKey:   storageKey,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
	}
	return photo, db.Instance.Create(&photo).Error
}

// PhotoFindOwned loads a photo for mutation (detail metadata, delete,
// share). "Belongs to someone else" and "does not exist" collapse into
// the same ErrNotFound.
func PhotoFindOwned(id, userID uint64) (Photo, error) {
	var photo Photo
	err := db.Instance.Joins("Bucket").
		Where("photos.id = ? AND photos.user_id = ?", id, userID).
		First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Photo{}, ErrNotFound
	}
	return photo, err
}

// PhotoFindVisible loads a photo for the detail view: readable by the
// owner and by grantees, ErrNotFound for everyone else.
func PhotoFindVisible(id, userID uint64) (Photo, error) {
	var photo Photo
	err := db.Instance.Joins("Bucket").Where("photos.id = ?", id).First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Photo{}, ErrNotFound
	}
	if err != nil {
		return Photo{}, err
	}
	if !photo.CanRead(userID) {
		return Photo{}, ErrNotFound
	}
	return photo, nil
}

// PhotoFindByStorageKey anchors the media path back to its record. The
// record, not the file system, is what authorization is decided on.
func PhotoFindByStorageKey(key string) (Photo, error) {
	var photo Photo
	err := db.Instance.Joins("Bucket").
		Where("photos.storage_key = ?", key).
		First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Photo{}, ErrNotFound
	}
	return photo, err
}

// PhotoListVisible returns the union of photos owned by the user and
// photos shared to them, newest first.
func PhotoListVisible(userID uint64) ([]Photo, error) {
	var photos []Photo
	err := db.Instance.
		Distinct("photos.*").
		Joins("left join photo_shares on photo_shares.photo_id = photos.id and photo_shares.user_id = ?", userID).
		Where("photos.user_id = ? OR photo_shares.user_id = ?", userID, userID).
		Order("photos.created_at DESC, photos.id DESC").
		Find(&photos).Error
	return photos, err
}

// Delete removes the record and its grants. The caller must have deleted
// the blob first - an orphaned blob is an acceptable leak, a record
// without bytes is not.
func (p *Photo) Delete() error {
	if err := db.Instance.Where("photo_id = ?", p.ID).Delete(&PhotoShare{}).Error; err != nil {
		return err
	}
	return db.Instance.Delete(p).Error
}

// GetDownloadURL returns a presigned S3 URL for the photo, re-signing
// when the cached one is no longer valid for at least 30 minutes.
// p.Bucket must be preloaded and be an S3 bucket.
func (p *Photo) GetDownloadURL(store storage.StorageAPI) (string, int64) {
	if p.PresignedURL == "" || p.PresignedUntil < time.Now().Add(presignValidAtLeastFor).Unix() {
		p.PresignedURL = store.DownloadURL(p.StorageKey, presignViewURLFor)
		p.PresignedUntil = time.Now().Add(presignViewURLFor).Unix()
		db.Instance.Updates(p)
	}
	return p.PresignedURL, p.PresignedUntil
}
