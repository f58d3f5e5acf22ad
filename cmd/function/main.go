package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/hakwonmap/academy-reputation/internal/config"
	"github.com/hakwonmap/academy-reputation/internal/counter"
	"github.com/hakwonmap/academy-reputation/internal/docstore"
)

func init() {
	// Register HTTP function for review-created notifications
	functions.HTTP("OnReviewCreated", OnReviewCreated)
}

var (
	serviceOnce sync.Once
	serviceErr  error
	service     *counter.Service
)

// getService builds the counter service once; the store client is reused
// across invocations for the lifetime of the function instance.
func getService(ctx context.Context) (*counter.Service, error) {
	serviceOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			serviceErr = err
			return
		}

		store, err := docstore.NewGCSStore(ctx, cfg.DocstoreBucket)
		if err != nil {
			serviceErr = err
			return
		}

		service = counter.NewService(store, nil)
	})
	return service, serviceErr
}

// OnReviewCreated receives a review-created notification and brings the
// academy's total_reviews in line with the review collection.
func OnReviewCreated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var event counter.ReviewCreatedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	svc, err := getService(ctx)
	if err != nil {
		log.Printf("Failed to initialize counter service: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := svc.HandleReviewCreated(ctx, event); err != nil {
		log.Printf("Failed to update review count for %s: %v", event.AcademyName, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":       "success",
		"academy_name": event.AcademyName,
	})
}

func main() {
	// This main function is required for Cloud Functions
	// The actual function registration happens in init()
}
