package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/caixa"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Putter é o pedaço do cliente S3 que o arquivo usa.
type Putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Report é o relatório de fechamento gravado no bucket.
type Report struct {
	Session   models.CashSession    `json:"session"`
	Movements []models.CashMovement `json:"movements"`
	Summary   caixa.Summary         `json:"summary"`
}

// Archiver grava relatórios de caixas fechados em segundo plano.
// Falha no upload nunca volta para quem fechou o caixa.
type Archiver struct {
	client  Putter
	bucket  string
	log     *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	wg sync.WaitGroup
}

func NewS3Client(cfg *config.Config) (*s3.Client, error) {
	if cfg.ArchiveBucket == "" {
		return nil, errors.New("archive: bucket name is required")
	}

	opts := s3.Options{
		Region: cfg.ArchiveRegion,
	}
	if cfg.AWSAccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretKey,
			"",
		)
	}
	if cfg.ArchiveEndpoint != "" {
		// MinIO e afins exigem path-style
		opts.BaseEndpoint = aws.String(cfg.ArchiveEndpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts), nil
}

func New(client Putter, bucket string, log *zap.Logger, m *metrics.Metrics) *Archiver {
	return &Archiver{
		client:  client,
		bucket:  bucket,
		log:     log.Named("archive"),
		metrics: m,
		timeout: 30 * time.Second,
	}
}

// Key segue {salon_id}/{YYYY-MM-DD}/{session_id}.json, data de abertura em UTC.
func Key(s *models.CashSession) string {
	return fmt.Sprintf("cash-sessions/%d/%s/%s.json",
		s.SalonID,
		s.OpenedAt.UTC().Format("2006-01-02"),
		s.ID,
	)
}

func (a *Archiver) Put(ctx context.Context, s *models.CashSession, movements []models.CashMovement) error {
	body, err := json.Marshal(Report{
		Session:   *s,
		Movements: movements,
		Summary:   caixa.Recompute(s.OpeningBalance, movements),
	})
	if err != nil {
		return fmt.Errorf("archive encode: %w", err)
	}

	key := Key(s)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
		ACL:           types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("archive upload %q: %w", key, err)
	}
	return nil
}

// SessionClosed dispara o upload sem bloquear.
func (a *Archiver) SessionClosed(s models.CashSession, movements []models.CashMovement) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.Put(ctx, &s, movements); err != nil {
			a.metrics.Archive(false)
			a.log.Error("cash session archive failed",
				zap.String("session_id", s.ID.String()),
				zap.Error(err),
			)
			return
		}
		a.metrics.Archive(true)
		a.log.Info("cash session archived", zap.String("session_id", s.ID.String()))
	}()
}

// Wait espera os uploads em andamento (usado no shutdown).
func (a *Archiver) Wait() {
	a.wg.Wait()
}
