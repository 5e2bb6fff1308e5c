package aws

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// S3UploadDocument streams one multipart upload into the documents bucket and
// returns the public URL for the stored object.
func S3UploadDocument(key string, fh *multipart.FileHeader) (string, error) {
	docsBucket := os.Getenv("S3_DOCUMENTS_BUCKET")
	file, err := fh.Open()
	if err != nil {
		log.Printf("Could not open file to upload: %s\n", err.Error())
		return "", err
	}
	defer file.Close()
	client := GetS3Client()
	if client == nil {
		return "", errors.New("could not create S3 client")
	}
	_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(docsBucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		log.Printf("[S3] Error uploading object: %s\n", err.Error())
		return "", err
	}
	region := os.Getenv("AWS_REGION")
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", docsBucket, region, key)
	return url, nil
}

func S3DeleteDocument(key string) error {
	docsBucket := os.Getenv("S3_DOCUMENTS_BUCKET")
	client := GetS3Client()
	if client == nil {
		return errors.New("could not create S3 client")
	}
	_, err := client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(docsBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		log.Printf("[S3] Error deleting object: %s\n", err.Error())
		return err
	}
	return nil
}
