package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	sc "github.com/dmitrijs2005/notemarket/internal/server/config"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const reportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// SalesReport locates an exported sales report.
type SalesReport struct {
	Key  string
	URL  string
	Rows int
}

// ReportService exports a seller's history to object storage.
type ReportService struct {
	history *HistoryService
	config  *sc.Config
}

func NewReportService(history *HistoryService, config *sc.Config) *ReportService {
	return &ReportService{history: history, config: config}
}

// ReportKey returns a fresh object key under the seller's prefix.
func ReportKey(sellerID string) string {
	d := timex.Now()
	return fmt.Sprintf("reports/%s/%d/%02d/%02d/%v.csv", sellerID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// ExportSales uploads the seller history as CSV and returns a presigned GET
// URL for it. Addresses are masked exactly as in SellerHistory.
func (s *ReportService) ExportSales(ctx context.Context, sellerID string) (*SalesReport, error) {
	views, err := s.history.SellerHistory(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	body, err := renderSalesCSV(views)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := ReportKey(sellerID)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	}); err != nil {
		return nil, fmt.Errorf("upload report: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(reportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign report: %w", err)
	}

	return &SalesReport{Key: key, URL: req.URL, Rows: len(views)}, nil
}

func (s *ReportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

var salesCSVHeader = []string{"purchase_id", "listing_id", "listing_title", "price", "tx_hash", "buyer_address", "seller_address", "purchased_at"}

func renderSalesCSV(views []*PurchaseHistoryView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(salesCSVHeader); err != nil {
		return nil, err
	}
	for _, v := range views {
		if err := w.Write([]string{
			v.ID,
			v.ListingID,
			v.ListingTitle,
			v.Price.String(),
			v.TxHash,
			v.BuyerAddress,
			v.SellerAddress,
			v.PurchasedAt.Format(time.RFC3339),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
