// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import "github.com/pdiddy/paper-radar/pkg/types"

// DefaultKeywords is the bootstrap keyword-weight table written to disk
// when no keyword file exists.
func DefaultKeywords() map[string]float64 {
	return map[string]float64{
		"machine learning":            5,
		"deep learning":               5,
		"neural network":              4,
		"artificial intelligence":     4,
		"ai":                          4,
		"computer vision":             3,
		"natural language processing": 3,
		"nlp":                         3,
		"healthcare":                  3,
		"finance":                     3,
		"autonomous":                  3,
		"robotics":                    3,
	}
}

// DefaultCommercialTables is the bootstrap commercial-signal table written
// to disk when no commercial file exists.
func DefaultCommercialTables() *types.CommercialTables {
	return &types.CommercialTables{
		PatentKeywords: map[string]float64{
			"novel":          3,
			"method":         2,
			"system":         2,
			"apparatus":      3,
			"device":         2,
			"improving":      2,
			"improved":       2,
			"enhancement":    2,
			"innovative":     3,
			"invention":      4,
			"approach":       1,
			"solution":       2,
			"technical":      1,
			"prototype":      3,
			"implementation": 2,
		},
		IndustryKeywords: map[string]float64{
			"industry":       2,
			"commercial":     3,
			"enterprise":     2,
			"business":       2,
			"market":         2,
			"product":        3,
			"production":     2,
			"manufacturing":  3,
			"deployment":     2,
			"real-world":     2,
			"cost-effective": 3,
			"application":    1,
			"scalable":       2,
			"practical":      2,
			"startup":        3,
		},
		MarketSectors: map[string]float64{
			"healthcare":     3,
			"finance":        3,
			"fintech":        4,
			"energy":         3,
			"transportation": 3,
			"robotics":       4,
			"security":       3,
			"cybersecurity":  4,
			"agriculture":    3,
			"retail":         2,
			"manufacturing":  3,
			"education":      2,
			"autonomous":     4,
			"sustainable":    3,
			"renewable":      3,
		},
		KnownAuthors: map[string]int{
			"Yoshua Bengio":   115,
			"Geoffrey Hinton": 130,
			"Yann LeCun":      125,
			"Andrew Ng":       100,
			"Fei-Fei Li":      95,
			"Ian Goodfellow":  85,
			"Andrej Karpathy": 70,
			"Jeff Dean":       90,
			"Demis Hassabis":  65,
			"Kaiming He":      80,
		},
	}
}
