// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

// Default vocabulary merged into every query. User-supplied fields lead
// the title-term merge so they are never crowded out by these defaults.
var (
	defaultTitleTerms = []string{
		"machine learning", "deep learning", "neural network", "artificial intelligence",
		"ai", "natural language processing", "nlp", "computer vision", "reinforcement learning",
		"transformer", "large language model", "llm", "generative ai", "diffusion model",
		"stable diffusion", "multimodal", "foundation model", "gpt", "attention mechanism",
		"bert", "gan", "transformer architecture", "vision transformer", "zero shot", "few shot",
		"self-supervised", "unsupervised learning", "supervised learning", "fine-tuning",
	}

	defaultAbstractTerms = []string{
		"algorithm", "framework", "optimization", "inference", "training", "fine-tuning",
		"performance", "state-of-the-art", "sota", "benchmark", "dataset", "accuracy",
		"precision", "recall", "f1", "neural", "autonomous", "prediction", "classification",
		"segmentation", "detection", "generation", "synthesis", "augmentation",
	}

	defaultCategories = []string{
		"cs.AI", "cs.LG", "cs.CV", "cs.CL", "cs.NE", "stat.ML",
	}
)

// Query-length caps: the index rejects very long query strings.
const (
	maxTitleTerms    = 10
	maxAbstractTerms = 5
	maxUserFields    = 5
)
