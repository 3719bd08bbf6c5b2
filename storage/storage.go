package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"photoserver/config"
	"photoserver/db"
)

// StorageSpecificAPI is what a backend (disk, S3) must provide on top of
// the shared local-file plumbing in Storage.
type StorageSpecificAPI interface {
	GetFullPath(path string) string
	EnsureDirExists(dir string) error
	// UpdateFile pushes the local copy to the remote store, if there is one
	UpdateFile(path, mimeType string) error
	// ReleaseLocalFile drops a local staging copy, if there is one
	ReleaseLocalFile(path string)
	DeleteRemoteFile(path string) error
}

type StorageAPI interface {
	StorageSpecificAPI

	// GetSize returns -1 if there is no local file behind the path
	GetSize(path string) int64
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	// DownloadURL returns a direct client-facing URL for remote stores, "" otherwise
	DownloadURL(path string, validFor time.Duration) string
	GetBucket() *Bucket
}

type Storage struct {
	specifics StorageSpecificAPI
	Bucket    Bucket
}

var cachedStorage []StorageAPI

func Init() {
	if err := db.Instance.AutoMigrate(&Bucket{}); err != nil {
		panic(err)
	}
	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "local",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	cachedStorage = []StorageAPI{}
	for _, bucket := range buckets {
		var storage StorageAPI
		if bucket.StorageType == StorageTypeFile {
			storage = NewDiskStorage(&bucket)
		} else if bucket.StorageType == StorageTypeS3 {
			storage = NewS3Storage(&bucket)
		} else {
			panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
		}
		cachedStorage = append(cachedStorage, storage)
	}
}

func StorageFrom(bucketID uint64) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucketID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

//
// NOTE: All the functions below work on a local file
//

func (s *Storage) GetSize(path string) int64 {
	fi, err := os.Stat(s.specifics.GetFullPath(path))
	if err != nil {
		return -1
	}
	return fi.Size()
}

func (s *Storage) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.specifics.GetFullPath(path)
	if err := s.specifics.EnsureDirExists(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *Storage) Load(path string, writer io.Writer) (int64, error) {
	file, err := os.Open(s.specifics.GetFullPath(path))
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(writer, file)
	file.Close()
	return result, err
}

// Serve handles byte ranges too
func (s *Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.ServeFile(writer, request, s.specifics.GetFullPath(path))
}

func (s *Storage) Delete(path string) error {
	return os.Remove(s.specifics.GetFullPath(path))
}
