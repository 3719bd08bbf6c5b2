package storage

import (
	"os"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type DiskStorage struct {
	Storage
	// BasePath is a directory (usually mount point of a disk) that is writable by the current process
	BasePath string
	dirs     cmap.ConcurrentMap[string, bool]
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	result := &DiskStorage{
		BasePath: bucket.Path,
		Storage: Storage{
			Bucket: *bucket,
		},
		dirs: cmap.New[bool](),
	}
	result.specifics = result
	return result
}

func (s *DiskStorage) GetFullPath(path string) string {
	return s.BasePath + "/" + path
}

func (s *DiskStorage) EnsureDirExists(dir string) error {
	if _, ok := s.dirs.Get(dir); ok {
		return nil
	}
	s.dirs.Set(dir, true)
	return os.MkdirAll(dir, 0777)
}

// UpdateFile is a no-op - the local file is the canonical copy
func (s *DiskStorage) UpdateFile(path, mimeType string) error {
	return nil
}

func (s *DiskStorage) ReleaseLocalFile(path string) {
}

func (s *DiskStorage) DeleteRemoteFile(path string) error {
	return nil
}

// DownloadURL is empty for disk buckets - files are streamed by the server itself
func (s *DiskStorage) DownloadURL(path string, validFor time.Duration) string {
	return ""
}
