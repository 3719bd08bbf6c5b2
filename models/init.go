package models

import (
	"photoserver/db"
)

func Init() {
	// Bucket is migrated in storage.Init, which must run first
	if err := db.Instance.AutoMigrate(&User{}, &Photo{}, &PhotoShare{}); err != nil {
		panic(err)
	}
}
