package config

import "os"

type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetStorageConfig() *StorageConfig {
	region := os.Getenv("STORAGE_REGION")
	if region == "" {
		region = "auto"
	}

	return &StorageConfig{
		Endpoint:        os.Getenv("STORAGE_ENDPOINT"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("STORAGE_BUCKET_NAME"),
		PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
		Region:          region,
	}
}
