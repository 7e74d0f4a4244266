package main

import (
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/datasource"
	"github.com/yourusername/tennis-tips/internal/features"
	"github.com/yourusername/tennis-tips/internal/match"
	"github.com/yourusername/tennis-tips/internal/model"
	"github.com/yourusername/tennis-tips/internal/normalize"
	"github.com/yourusername/tennis-tips/internal/rating"
	"github.com/yourusername/tennis-tips/internal/repository"
	"github.com/yourusername/tennis-tips/internal/service"
	"github.com/yourusername/tennis-tips/internal/tips"
)

// pipeline bundles the wired components every command draws from
type pipeline struct {
	normalizer *normalize.Normalizer
	matcher    match.Strategy
	engine     *rating.Engine
	builder    *features.Builder
	ingestion  *service.IngestionService
	dataset    *service.DatasetService
	trainer    *service.TrainerService
	tipRepo    repository.TipRepository
	modelRepo  repository.ModelRepository
}

// buildPipeline constructs the components from configuration. A nil db
// leaves all repositories nil and the pipeline file-to-file.
func buildPipeline(db *database.DB) (*pipeline, error) {
	normalizer := normalize.New()

	matcher := match.NewGreedyMatcher(match.Config{
		DateToleranceDays:   cfg.Matcher.DateToleranceDays,
		SimilarityThreshold: cfg.Matcher.SimilarityThreshold,
		TieEpsilon:          cfg.Matcher.TieEpsilon,
	}, normalizer, appLog)

	engine := rating.NewEngine(rating.Config{
		BaseRating:        cfg.Elo.BaseRating,
		KFactor:           cfg.Elo.KFactor,
		ScaleConstant:     cfg.Elo.ScaleConstant,
		SurfaceKBoost:     cfg.Elo.SurfaceKBoost,
		RookieMatches:     cfg.Elo.RookieMatches,
		RookieKMultiplier: cfg.Elo.RookieKMultiplier,
		FormWindow:        cfg.Elo.FormWindow,
		H2HDecay:          cfg.Elo.H2HDecay,
	}, normalizer, appLog)

	builder := features.NewBuilder(features.Config{
		Fatigue:     fatigueParams(),
		RestCapDays: cfg.Features.RestCapDays,
	})

	resultsSources, err := datasource.BuildResultsSources(cfg, appLog)
	if err != nil {
		return nil, err
	}
	oddsSources, err := datasource.BuildOddsSources(cfg, appLog)
	if err != nil {
		return nil, err
	}

	var (
		resultRepo repository.MatchResultRepository
		oddsRepo   repository.OddsRepository
		mergedRepo repository.MergedMatchRepository
		tipRepo    repository.TipRepository
		modelRepo  repository.ModelRepository
	)
	if db != nil {
		resultRepo = repository.NewPostgresMatchResultRepository(db)
		oddsRepo = repository.NewPostgresOddsRepository(db)
		mergedRepo = repository.NewPostgresMergedMatchRepository(db)
		tipRepo = repository.NewPostgresTipRepository(db)
		modelRepo = repository.NewPostgresModelRepository(db)
	}

	validator := service.NewDataValidator(appLog)
	ingestion := service.NewIngestionService(resultsSources, oddsSources, resultRepo, oddsRepo, validator, appLog)
	dataset := service.NewDatasetService(matcher, engine, builder, mergedRepo, appLog)
	trainer := service.NewTrainerService(model.Config{
		MinSamples:     cfg.Model.MinSamples,
		ValidationSize: cfg.Model.ValidationSize,
		MaxIter:        cfg.Model.MaxIter,
		Calibration:    cfg.Model.Calibration,
		Seed:           cfg.Model.Seed,
	}, modelRepo, appLog)

	return &pipeline{
		normalizer: normalizer,
		matcher:    matcher,
		engine:     engine,
		builder:    builder,
		ingestion:  ingestion,
		dataset:    dataset,
		trainer:    trainer,
		tipRepo:    tipRepo,
		modelRepo:  modelRepo,
	}, nil
}

func fatigueParams() features.FatigueParams {
	return features.FatigueParams{
		PerMatch7d:  cfg.Features.Fatigue7d,
		PerMatch14d: cfg.Features.Fatigue14d,
		PerMatch30d: cfg.Features.Fatigue30d,
		BackToBack:  cfg.Features.BackToBack,
		ShortRest:   cfg.Features.ShortRest,
		MinProb:     cfg.Features.MinProb,
		MaxProb:     cfg.Features.MaxProb,
	}
}

func selectionConfig() tips.Config {
	return tips.Config{
		EdgeThreshold:  cfg.Selection.EdgeThreshold,
		MinProbability: cfg.Selection.MinProbability,
		MaxProbability: cfg.Selection.MaxProbability,
		KellyFraction:  cfg.Selection.KellyFraction,
		KellyCap:       cfg.Selection.KellyCap,
		FatigueAdjust:  cfg.Selection.FatigueAdjust,
	}
}
