//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// Requires a running API with a seeded database. INTEGRATION_DECK_SLUG must
// name a public deck.
func TestQuizIndexFlow(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	slug := envOrDefault("INTEGRATION_DECK_SLUG", "")
	if slug == "" {
		t.Skip("INTEGRATION_DECK_SLUG not set")
	}

	var index struct {
		Deck struct {
			Slug    string `json:"slug"`
			Variant string `json:"variant"`
		} `json:"deck"`
		Questions []struct {
			ID         int64  `json:"id"`
			Difficulty string `json:"difficulty"`
		} `json:"questions"`
	}
	status := getJSON(t, fmt.Sprintf("%s/quiz/index?deckSlug=%s", baseURL, slug), &index)
	if status != http.StatusOK {
		t.Fatalf("unexpected index status: %d", status)
	}
	if index.Deck.Slug != slug {
		t.Fatalf("expected deck slug %q, got %q", slug, index.Deck.Slug)
	}

	if len(index.Questions) == 0 {
		t.Skip("deck resolved to no questions; nothing to fetch")
	}

	var details []struct {
		ID   int64 `json:"id"`
		Stem string `json:"stem"`
	}
	status = getJSON(t, fmt.Sprintf("%s/quiz/questions?ids=%d", baseURL, index.Questions[0].ID), &details)
	if status != http.StatusOK {
		t.Fatalf("unexpected question status: %d", status)
	}
	if len(details) != 1 || details[0].ID != index.Questions[0].ID {
		t.Fatalf("question detail mismatch: %+v", details)
	}
}

func TestQuizIndexMissingSlug(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	status := getJSON(t, fmt.Sprintf("%s/quiz/index", baseURL), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing deckSlug, got %d", status)
	}
}

func TestQuizUnknownDeck(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	status := getJSON(t, fmt.Sprintf("%s/quiz/index?deckSlug=no-such-deck-slug", baseURL), nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown deck, got %d", status)
	}
}

func TestWritesRejectedWithoutSecret(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	resp, err := http.Post(fmt.Sprintf("%s/questions/bulk", baseURL), "application/json", nil)
	if err != nil {
		t.Fatalf("bulk request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected write to be rejected, got %d", resp.StatusCode)
	}
}
