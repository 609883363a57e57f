// Command migrate copies every collection from one document store backend to
// another, for example from the JSON files in ./data into Postgres.
//
// The source is configured with the usual environment; the target with the
// same keys prefixed by TARGET_ (TARGET_STORE_BACKEND, TARGET_DATABASE_URL, ...).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/config"
	"github.com/vnkhanh/e-learning-backend/store"
)

type targetConfig struct {
	StoreBackend   string `env:"TARGET_STORE_BACKEND"`
	DataDir        string `env:"TARGET_DATA_DIR"`
	DatabaseURL    string `env:"TARGET_DATABASE_URL"`
	MongoURI       string `env:"TARGET_MONGO_URI"`
	MongoDatabase  string `env:"TARGET_MONGO_DATABASE" envDefault:"elearning"`
	SupabaseURL    string `env:"TARGET_SUPABASE_URL"`
	SupabaseKey    string `env:"TARGET_SUPABASE_KEY"`
	SupabaseBucket string `env:"TARGET_SUPABASE_BUCKET"`
	SupabasePrefix string `env:"TARGET_SUPABASE_PREFIX" envDefault:"collections"`
}

func (t targetConfig) config() *config.Config {
	return &config.Config{
		StoreBackend:   t.StoreBackend,
		DataDir:        t.DataDir,
		DatabaseURL:    t.DatabaseURL,
		DBMaxIdleConns: 2,
		DBMaxOpenConns: 4,
		MongoURI:       t.MongoURI,
		MongoDatabase:  t.MongoDatabase,
		SupabaseURL:    t.SupabaseURL,
		SupabaseKey:    t.SupabaseKey,
		SupabaseBucket: t.SupabaseBucket,
		SupabasePrefix: t.SupabasePrefix,
	}
}

func main() {
	dryRun := flag.Bool("dry-run", false, "load every collection but write nothing")
	flag.Parse()

	_ = godotenv.Load()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(context.Background(), log, *dryRun); err != nil {
		log.WithError(err).Error("migration failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logrus.Logger, dryRun bool) error {
	srcCfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("source config: %w", err)
	}
	var tgt targetConfig
	if err := env.Parse(&tgt); err != nil {
		return fmt.Errorf("target config: %w", err)
	}
	dstCfg := tgt.config()
	if err := dstCfg.Validate(); err != nil {
		return fmt.Errorf("target config: %w", err)
	}

	src, err := config.OpenBackend(ctx, srcCfg)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer closeStore(src)
	dst, err := config.OpenBackend(ctx, dstCfg)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer closeStore(dst)

	n, err := copyCollections(ctx, src, dst, dryRun, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"from":        srcCfg.StoreBackend,
		"to":          dstCfg.StoreBackend,
		"collections": n,
		"dry_run":     dryRun,
	}).Info("migration finished")
	return nil
}

// copyCollections copies what src can list, or every known collection when
// it cannot. Missing collections are skipped.
func copyCollections(ctx context.Context, src, dst store.Store, dryRun bool, log logrus.FieldLogger) (int, error) {
	names := store.AllCollections
	if l, ok := src.(store.Lister); ok {
		listed, err := l.Names(ctx)
		if err != nil {
			return 0, fmt.Errorf("list source collections: %w", err)
		}
		names = listed
	}

	copied := 0
	for _, name := range names {
		records, err := src.Load(ctx, name)
		if errors.Is(err, store.ErrCollectionMissing) {
			log.WithField("collection", name).Warn("missing in source, skipped")
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("load %s: %w", name, err)
		}
		if !dryRun {
			if err := dst.Save(ctx, name, records); err != nil {
				return copied, fmt.Errorf("save %s: %w", name, err)
			}
		}
		log.WithFields(logrus.Fields{"collection": name, "records": len(records)}).Info("copied")
		copied++
	}
	return copied, nil
}

func closeStore(s store.Store) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}
