package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/corpus"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/features"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/training"
)

var (
	// Training input flags
	corpusFile = flag.String("corpus", "", "Labeled corpus file (label<TAB>text per line)")
	version    = flag.String("version", "", "Version tag to assign to the trained artifact")

	// Classifier flags
	algorithm    = flag.String("algorithm", "naive_bayes", "Classifier algorithm (naive_bayes, logreg)")
	alpha        = flag.Float64("alpha", 1.0, "Laplace smoothing for naive bayes")
	learningRate = flag.Float64("learning-rate", 0.1, "Learning rate for logistic regression")
	epochs       = flag.Int("epochs", 200, "Training epochs for logistic regression")
	seed         = flag.Int64("seed", 42, "Seed recorded in the artifact metadata")

	// Normalization flags
	locale   = flag.String("locale", "en", "Stop-word locale for normalization")
	stemming = flag.Bool("stemming", false, "Enable snowball stemming")

	// Feature space flags
	ngramMax   = flag.Int("ngram-max", 1, "Maximum word n-gram length")
	minDocFreq = flag.Int("min-doc-freq", 1, "Minimum document frequency for vocabulary terms")

	// Output flags
	outputDir   = flag.String("output", "./model_files", "Directory for the persisted artifact")
	archivePath = flag.String("archive", "", "Also write a model-release.tar.gz to this path")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog     = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *corpusFile == "" {
		logger.Fatal("A corpus file is required (-corpus)")
	}
	if *version == "" {
		logger.Fatal("A version tag is required (-version)")
	}

	cfg := createConfigFromFlags()

	// Build the pipeline pieces from configuration
	normalizerFactory := factory.NewNormalizerFactory(cfg, logger)
	normalizer, err := normalizerFactory.CreateNormalizer()
	if err != nil {
		logger.Fatal("Failed to create normalizer", zap.Error(err))
	}

	fc := cfg.GetFeatures()
	vectorizer := features.NewVectorizer(fc.NGramMax, fc.MinDocFreq)

	classifierFactory := factory.NewClassifierFactory(cfg, logger)
	trainer := training.NewTrainer(normalizer, vectorizer, classifierFactory.ClassifierConfig(), logger)

	// Load the corpus
	msgs, err := corpus.Load(*corpusFile)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	fmt.Printf("\n=== Training ===\n")
	fmt.Printf("Corpus: %s (%d messages)\n", *corpusFile, len(msgs))
	fmt.Printf("Algorithm: %s\n", *algorithm)
	fmt.Printf("Version: %s\n", *version)

	startTime := time.Now()
	result, err := trainer.Train(context.Background(), msgs, *version)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}
	duration := time.Since(startTime)

	// Persist the artifact
	if err := artifact.Save(*outputDir, result.Metadata, result.Space, result.Classifier); err != nil {
		logger.Fatal("Failed to persist artifact", zap.Error(err))
	}

	if *archivePath != "" {
		if err := artifact.Package(*outputDir, *version, *archivePath); err != nil {
			logger.Fatal("Failed to package release archive", zap.Error(err))
		}
		fmt.Printf("Release archive: %s\n", *archivePath)
	}

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Vocabulary size: %d\n", result.Metadata.VocabularySize)
	fmt.Printf("Corpus size: %d\n", result.Metadata.CorpusSize)
	fmt.Printf("Trained at: %s\n", result.Metadata.TrainedAt.Format(time.RFC3339))
	fmt.Printf("Artifact: %s/%s\n", *outputDir, *version)
	fmt.Printf("Training time: %v\n", duration)
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("normalizer.stopword_locale", *locale)
	v.Set("normalizer.stemming", *stemming)

	v.Set("features.ngram_max", *ngramMax)
	v.Set("features.min_doc_freq", *minDocFreq)

	v.Set("classifier.algorithm", *algorithm)
	v.Set("classifier.alpha", *alpha)
	v.Set("classifier.learning_rate", *learningRate)
	v.Set("classifier.epochs", *epochs)
	v.Set("classifier.seed", *seed)

	return config.NewFromViper(v)
}
