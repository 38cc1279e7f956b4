package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/viant/knnq/config"
	"github.com/viant/knnq/engine"
	"github.com/viant/knnq/index"
	"github.com/viant/knnq/index/bruteforce"
	"github.com/viant/knnq/index/cover"
	"github.com/viant/knnq/logger"
	"github.com/viant/knnq/vecadmin"
	"github.com/viant/knnq/vector"
)

// result is one printed line. The distance is in the metric of the index:
// squared euclidean for the store, 1-cosine for brute and the configured
// metric for cover.
type result struct {
	id       string
	distance float64
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer) error {
	db, err := engine.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := vector.NewSQLiteStore(db, vector.WithLogger(log))
	if err != nil {
		return err
	}
	if cfg.ImportFile != "" {
		n, err := importCSV(ctx, store, cfg.ImportFile)
		if err != nil {
			return err
		}
		log.Infof("imported %d points from %s", n, cfg.ImportFile)
	}
	if len(cfg.Query) == 0 {
		log.Info("no query configured")
		return nil
	}

	var results []result
	switch cfg.Index {
	case config.IndexStore:
		results, err = searchStore(ctx, store, cfg)
	default:
		results, err = searchIndex(ctx, db, cfg, log)
	}
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Fprintf(out, "%d %s %g\n", i+1, r.id, r.distance)
	}
	return nil
}

func searchStore(ctx context.Context, store *vector.SQLiteStore, cfg *config.Config) ([]result, error) {
	docs, err := store.SimilaritySearch(ctx, cfg.Query, cfg.K)
	if err != nil {
		return nil, err
	}
	results := make([]result, len(docs))
	for i, d := range docs {
		results[i] = result{id: d.ID, distance: d.Distance}
	}
	return results, nil
}

func searchIndex(ctx context.Context, db *sql.DB, cfg *config.Config, log *logger.Logger) ([]result, error) {
	var idx index.Index
	toDistance := func(score float64) float64 { return 1 - score }
	switch cfg.Index {
	case config.IndexBrute:
		idx = &bruteforce.Index{}
	case config.IndexCover:
		name := cfg.Distance
		if name == "" {
			name = config.DefaultDistance(cfg.Index)
		}
		distance, err := cover.ParseDistance(name)
		if err != nil {
			return nil, err
		}
		c := cover.New(cover.WithDistance(distance))
		idx, toDistance = c, c.Distance
	default:
		return nil, fmt.Errorf("knnq: unknown index %q", cfg.Index)
	}
	n, err := vecadmin.Reindex(ctx, db, "knnq_"+cfg.Index, idx)
	if err != nil {
		return nil, err
	}
	log.Debugf("%s index built over %d points", cfg.Index, n)

	ids, scores, err := idx.Query(cfg.Query, cfg.K)
	if err != nil {
		return nil, err
	}
	results := make([]result, len(ids))
	for i, id := range ids {
		results[i] = result{id: id, distance: toDistance(scores[i])}
	}
	return results, nil
}

// importCSV loads rows of the form id,x1,x2,... into the store. Blank lines
// and lines starting with # are ignored.
func importCSV(ctx context.Context, store vector.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var docs []vector.Document
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("knnq: %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		if len(record) < 2 {
			return 0, fmt.Errorf("knnq: %s:%d: expected id and at least one coordinate", path, line)
		}
		coords := make([]float32, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return 0, fmt.Errorf("knnq: %s:%d: %w", path, line, err)
			}
			coords = append(coords, float32(v))
		}
		docs = append(docs, vector.Document{ID: strings.TrimSpace(record[0]), Embedding: coords})
	}
	ids, err := store.AddDocuments(ctx, docs)
	return len(ids), err
}
