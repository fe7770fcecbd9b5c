package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client uploads export files into one bucket.
type Client struct {
	client PutObjectAPI
	bucket string
}

func NewClient(cfg aws.Config, bucket string) *Client {
	return NewClientFromAPI(s3.NewFromConfig(cfg), bucket)
}

func NewClientFromAPI(api PutObjectAPI, bucket string) *Client {
	return &Client{client: api, bucket: bucket}
}

func (c *Client) Put(ctx context.Context, key string, reader io.Reader) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return fmt.Errorf("s3: put s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

func (c *Client) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, key)
}
