package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photoserver/db"
	"photoserver/storage"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100);index:uniq_name,unique"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique"`
	Password  string `gorm:"type:varchar(100)"` // bcrypt hash
	BucketID  *uint64
	Bucket    storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func UserCreate(name, email, plainTextPassword string) (u User, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	u.Name = name
	u.Email = strings.ToLower(email)
	u.Password = string(hash)
	if s := storage.GetDefaultStorage(); s != nil {
		u.BucketID = &s.GetBucket().ID
	}
	return u, db.Instance.Create(&u).Error
}

func UserLogin(email, plainTextPassword string) (User, error) {
	var u User
	err := db.Instance.First(&u, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return User{}, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func UserFindByEmail(email string) (User, error) {
	var u User
	err := db.Instance.First(&u, "email = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return u, err
}

func UserFindByID(id uint64) (User, error) {
	var u User
	err := db.Instance.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	return u, err
}

func UserNameTaken(name string) bool {
	var count int64
	db.Instance.Model(&User{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func UserEmailTaken(email string) bool {
	var count int64
	db.Instance.Model(&User{}).Where("email = ?", strings.ToLower(email)).Count(&count)
	return count > 0
}
