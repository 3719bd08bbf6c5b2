package storage

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"photoserver/db"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int
	UpdatedAt   int
	Name        string `gorm:"type:varchar(200)"` // label, or S3 bucket name
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Endpoint    string `gorm:"type:varchar(300)"` // Custom S3 endpoint (empty for AWS)
	Region      string `gorm:"type:varchar(50)"`
	// Authentication details. In case of S3 bucket - "key:secret"
	AuthDetails   string
	SSEEncryption string `gorm:"type:varchar(50)"`
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath maps a storage key to the object key within the S3 bucket,
// honouring the configured prefix.
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	cfg := aws.NewConfig()
	if b.Region != "" {
		cfg = cfg.WithRegion(b.Region)
	}
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	if parts := strings.SplitN(b.AuthDetails, ":", 2); len(parts) == 2 {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(parts[0], parts[1], ""))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		log.Printf("Bucket %d: cannot create S3 session: %v", b.ID, err)
		return nil
	}
	return s3.New(sess)
}

// CreateS3DownloadURI presigns a GET for the object behind the given storage key.
func (b *Bucket) CreateS3DownloadURI(svc *s3.S3, path string, validFor time.Duration) string {
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	})
	url, err := req.Presign(validFor)
	if err != nil {
		log.Printf("Bucket %d: presign failed for %s: %v", b.ID, path, err)
		return ""
	}
	return url
}
