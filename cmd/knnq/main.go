package main

import (
	"context"
	"fmt"
	"os"

	"github.com/viant/knnq/config"
	"github.com/viant/knnq/logger"
)

// Usage: knnq [config.yaml]
//
// Settings not present in the file come from KNNQ_ environment variables,
// e.g. KNNQ_KNN_QUERY="0.5,1" KNNQ_IMPORT_FILE=points.csv knnq.
//
// Each output line is "rank id distance". The distance column is squared
// euclidean for knn.index=store, 1-cosine for brute, and euclidean (or
// cosine with knn.distance=cosine) for cover.
func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logger.New(logger.Config{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Close()

	if err := run(context.Background(), cfg, log, os.Stdout); err != nil {
		log.Errorf("%v", err)
		_ = log.Close()
		os.Exit(1)
	}
}
