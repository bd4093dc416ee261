package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"brandintel/internal/models"
)

type fakeContentLister struct {
	items []models.ContentItem
	err   error
}

func (f *fakeContentLister) ItemsForOwner(ctx context.Context, ownerID string, limit int) ([]models.ContentItem, error) {
	return f.items, f.err
}

type fakeSynthesizer struct {
	qualitative models.QualitativeProfile
	err         error
	calls       int
	gotSamples  []string
}

func (f *fakeSynthesizer) SynthesizeProfile(ctx context.Context, ownerID string, profile models.BrandProfile, samples []string) (models.QualitativeProfile, error) {
	f.calls++
	f.gotSamples = samples
	return f.qualitative, f.err
}

func TestGenerateBrandProfileMergesQualitative(t *testing.T) {
	lister := &fakeContentLister{items: []models.ContentItem{
		{OwnerID: "brand-1", Text: "Shipping fast and loving it", Timestamp: time.Now()},
	}}
	synth := &fakeSynthesizer{qualitative: models.QualitativeProfile{
		Voice:       "Energetic and direct",
		Positioning: "Builder-first",
	}}

	service := NewProfileService(lister, nil, synth, time.Minute)
	profile, err := service.GenerateBrandProfile(context.Background(), "brand-1", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if profile.OwnerID != "brand-1" {
		t.Errorf("Expected owner brand-1, got %q", profile.OwnerID)
	}
	if profile.ItemCount != 1 {
		t.Errorf("Expected 1 item, got %d", profile.ItemCount)
	}
	if profile.Qualitative.Voice != "Energetic and direct" {
		t.Errorf("Expected synthesized voice, got %q", profile.Qualitative.Voice)
	}
	if synth.calls != 1 {
		t.Errorf("Expected one synthesis call, got %d", synth.calls)
	}
	if len(synth.gotSamples) != 1 {
		t.Errorf("Expected 1 sample text, got %d", len(synth.gotSamples))
	}
}

func TestGenerateBrandProfileSynthesisFailureIsNotFatal(t *testing.T) {
	lister := &fakeContentLister{items: []models.ContentItem{
		{OwnerID: "brand-1", Text: "Some content", Timestamp: time.Now()},
	}}
	synth := &fakeSynthesizer{err: fmt.Errorf("model unavailable")}

	service := NewProfileService(lister, nil, synth, time.Minute)
	profile, err := service.GenerateBrandProfile(context.Background(), "brand-1", false)
	if err != nil {
		t.Fatalf("Expected quantitative profile despite synthesis failure, got %v", err)
	}

	if profile.Qualitative.Voice != "" {
		t.Errorf("Expected empty qualitative section, got %q", profile.Qualitative.Voice)
	}
	if profile.ItemCount != 1 {
		t.Errorf("Expected quantitative sections intact, got item count %d", profile.ItemCount)
	}
}

func TestGenerateBrandProfileEmptyCorpusSkipsSynthesis(t *testing.T) {
	synth := &fakeSynthesizer{}
	service := NewProfileService(&fakeContentLister{}, nil, synth, time.Minute)

	profile, err := service.GenerateBrandProfile(context.Background(), "brand-1", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if profile.ItemCount != 0 {
		t.Errorf("Expected item count 0, got %d", profile.ItemCount)
	}
	if synth.calls != 0 {
		t.Errorf("Expected no synthesis call for an empty corpus, got %d", synth.calls)
	}
}

func TestGenerateBrandProfileRequiresOwner(t *testing.T) {
	service := NewProfileService(&fakeContentLister{}, nil, nil, time.Minute)
	if _, err := service.GenerateBrandProfile(context.Background(), "", false); err == nil {
		t.Error("Expected error for missing owner ID")
	}
}

func TestSampleTexts(t *testing.T) {
	items := []models.ContentItem{
		{Text: "first"},
		{Text: ""},
		{Text: "second"},
		{Text: "third"},
	}

	samples := sampleTexts(items, 2)
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	if samples[0] != "first" || samples[1] != "second" {
		t.Errorf("Expected empty texts skipped, got %v", samples)
	}
}
