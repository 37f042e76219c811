package main

import (
	"github.com/arxradar/arxradar/internal/arxiv"
	"github.com/arxradar/arxradar/internal/category"
	"github.com/arxradar/arxradar/internal/config"
	"github.com/arxradar/arxradar/internal/fetch"
	"github.com/arxradar/arxradar/internal/pipeline"
	"github.com/arxradar/arxradar/internal/store"
)

// mustBuildPipeline constructs the harvest pipeline from configuration,
// exiting on any setup failure.
func mustBuildPipeline(cfg *config.Config) *pipeline.Pipeline {
	categories, err := category.Load(cfg.CategoriesPath())
	if err != nil {
		exitWithError(ExitConfigError, "loading categories: %v", err)
	}

	years, err := store.NewYearStore(cfg.PapersPath())
	if err != nil {
		exitWithError(ExitDataError, "opening year store: %v", err)
	}

	client := arxiv.NewClient(arxiv.WithBaseURL(cfg.BaseURL))
	limiter := arxiv.NewLimiter(cfg.RequestDelay())
	fetcher := fetch.NewFetcher(client, limiter, log)
	collector := fetch.NewCollector(fetcher, log)
	categorizer := category.NewCategorizer(categories, cfg.KeywordThreshold)

	return pipeline.New(collector, categorizer, pipeline.Stores{
		Years:         years,
		IndexPath:     cfg.IndexPath(),
		BlockListPath: cfg.BlockListPath(),
	}, log)
}

// mustLoadQueries loads the harvest query list, exiting on error.
func mustLoadQueries(cfg *config.Config) []fetch.TopicQuery {
	queries, err := fetch.LoadQueries(cfg.QueriesPath())
	if err != nil {
		exitWithError(ExitConfigError, "loading queries: %v", err)
	}
	return queries
}
