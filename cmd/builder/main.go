package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/meur/cobbledex/internal/builder"
	"github.com/meur/cobbledex/internal/species"
)

func main() {
	godotenv.Load()

	cfgPath := flag.String("config", getEnv("BUILDER_CONFIG", "builder.yaml"), "Builder config path")
	outPath := flag.String("out", "", "Dataset output path (overrides config)")
	noEnrich := flag.Bool("no-enrich", false, "Skip species enrichment")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg, err := builder.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *outPath != "" {
		cfg.OutFile = *outPath
	}
	if *noEnrich {
		cfg.Enrich = false
	}

	var sp *species.Client
	if cfg.Enrich {
		sp = species.NewClient(cfg.SpeciesAPI, log)
	}

	ctx := context.Background()
	b := builder.New(sp, log)

	// Spawn data is the one input the build cannot do without.
	if err := b.IngestSpawnFile(cfg.SpawnFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.SpawnFile).Msg("failed to ingest spawn export")
	}

	// Everything network-backed is best effort: each feed failure is
	// logged and the build completes with partial data.
	if cfg.TierFeed != "" {
		b.IngestTierFeed(ctx, cfg.TierFeed)
	}
	b.IngestUsageFeeds(ctx, cfg.UsageFeeds)
	if cfg.Enrich {
		b.Enrich(ctx)
	}

	if err := b.Dataset().Save(cfg.OutFile); err != nil {
		log.Fatal().Err(err).Msg("failed to write dataset")
	}
	log.Info().Str("out", cfg.OutFile).Int("records", len(b.Dataset().Records)).Msg("build complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
