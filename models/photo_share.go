package models

import (
	"photoserver/db"
)

// PhotoShare is a standing read-only grant from a photo's owner to
// another user. Grants do not expire and there is no revocation.
type PhotoShare struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	PhotoID   uint64 `gorm:"not null;index:uniq_photo_user,unique,priority:1"`
	Photo     Photo  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"not null;index:uniq_photo_user,unique,priority:2"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func shareExists(photoID, userID uint64) bool {
	var count int64
	db.Instance.Model(&PhotoShare{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count)
	return count > 0
}

// SharePhoto grants read access on one of the owner's photos to the user
// behind targetEmail. A photo that is not owned by the caller reads as
// ErrNotFound, even when it exists under another owner.
func SharePhoto(owner *User, photoID uint64, targetEmail string) (PhotoShare, error) {
	photo, err := PhotoFindOwned(photoID, owner.ID)
	if err != nil {
		return PhotoShare{}, err
	}
	target, err := UserFindByEmail(targetEmail)
	if err != nil {
		return PhotoShare{}, &ValidationError{"no such user"}
	}
	if target.ID == owner.ID {
		return PhotoShare{}, &ValidationError{"cannot share with self"}
	}
	if shareExists(photo.ID, target.ID) {
		return PhotoShare{}, &ValidationError{"already shared"}
	}
	share := PhotoShare{
		PhotoID: photo.ID,
		UserID:  target.ID,
	}
	if err := db.Instance.Create(&share).Error; err != nil {
		// The unique index on (photo_id, user_id) is the real guard; a
		// concurrent duplicate that slipped past the pre-check lands here.
		if shareExists(photo.ID, target.ID) {
			return PhotoShare{}, &ValidationError{"already shared"}
		}
		return PhotoShare{}, err
	}
	return share, nil
}
