// Package cache stores generated narratives so identical reports are not
// sent to an LLM provider twice.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/ppiankov/foundervalue/internal/model"
)

const keyPrefix = "foundervalue:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// summaryFingerprint is the part of a report a narrative depends on.
// ID, timestamps and the source path are excluded.
type summaryFingerprint struct {
	Company  string                       `json:"company"`
	Stage    model.StageSlug              `json:"stage"`
	Results  []model.MethodResult         `json:"results"`
	Low      float64                      `json:"low"`
	Mid      float64                      `json:"mid"`
	High     float64                      `json:"high"`
	Offer    *model.OfferEvaluationResult `json:"offer,omitempty"`
	Provider string                       `json:"provider"`
	Model    string                       `json:"model"`
}

// SummaryKey derives the narrative cache key for a report and provider/model pair
func SummaryKey(report model.Report, provider, llmModel string) string {
	fp := summaryFingerprint{
		Company:  report.Company,
		Stage:    report.Stage,
		Results:  report.Results.Methods,
		Low:      report.Results.AggregateLow,
		Mid:      report.Results.AggregateMidpoint,
		High:     report.Results.AggregateHigh,
		Offer:    report.Offer,
		Provider: provider,
		Model:    llmModel,
	}
	data, err := json.Marshal(fp)
	if err != nil {
		// unreachable for these types; fall back to a key that never collides with a hash
		return keyPrefix + "unhashable"
	}
	return Key(data)
}

// Key hashes arbitrary content into a namespaced cache key
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return keyPrefix + hex.EncodeToString(hash[:])
}
