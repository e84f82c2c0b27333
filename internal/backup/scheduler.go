package backup

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"chapterfund-backend/internal/config"
)

// Scheduler snapshots the ledger tables to S3-compatible storage on a fixed
// interval. Financial records are append-only, so a plain SQL snapshot is a
// usable restore point.
type Scheduler struct {
	db       *pgxpool.Pool
	cfg      config.ArchiveConfig
	ticker   *time.Ticker
	stopChan chan bool
	mu       sync.Mutex
}

// Tables in dependency order so a restore can replay the file top to bottom.
var archiveTables = []string{
	"chapters", "users", "members", "purposes",
	"member_transactions", "custody_transfers", "custody_receipts",
	"bank_movements", "login_logs",
}

func NewScheduler(db *pgxpool.Pool, cfg config.ArchiveConfig) *Scheduler {
	return &Scheduler{db: db, cfg: cfg}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return // Already running
	}

	interval := time.Duration(s.cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	s.ticker = time.NewTicker(interval)
	s.stopChan = make(chan bool)

	go func() {
		log.Println("[Archive] Snapshot scheduler started")
		s.runSnapshot()

		for {
			select {
			case <-s.ticker.C:
				s.runSnapshot()
			case <-s.stopChan:
				log.Println("[Archive] Scheduler stopped")
				return
			}
		}
	}()

	log.Printf("[Archive] Scheduler started (interval: %v)", interval)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stopChan)
	s.ticker = nil
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("[Archive] Starting snapshot...")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure storage client: %v", err)
		return
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
	})

	data, err := s.dump(ctx)
	if err != nil {
		log.Printf("[Archive] Failed to create snapshot: %v", err)
		return
	}

	key := fmt.Sprintf("snapshots/chapterfund_db_%s.sql", time.Now().Format("20060102_150405"))

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/sql"),
	})
	if err != nil {
		log.Printf("[Archive] Failed to upload: %v", err)
		return
	}

	log.Printf("[Archive] Success: %s (%d bytes)", key, len(data))
}

// dump serializes every archive table as INSERT statements.
func (s *Scheduler) dump(ctx context.Context) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString("-- ChapterFund ledger snapshot\n")
	buffer.WriteString(fmt.Sprintf("-- Generated: %s\n", time.Now().Format(time.RFC3339)))

	for _, table := range archiveTables {
		rows, err := s.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id", table))
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}

		buffer.WriteString(fmt.Sprintf("\n-- Table: %s\n", table))

		descs := rows.FieldDescriptions()
		cols := make([]string, len(descs))
		for i, d := range descs {
			cols[i] = string(d.Name)
		}

		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("dump %s: %w", table, err)
			}
			buffer.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (", table, strings.Join(cols, ", ")))
			for i, v := range values {
				if i > 0 {
					buffer.WriteString(", ")
				}
				buffer.WriteString(sqlLiteral(v))
			}
			buffer.WriteString(");\n")
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}
	}

	return buffer.Bytes(), nil
}

func sqlLiteral(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05") + "'"
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
