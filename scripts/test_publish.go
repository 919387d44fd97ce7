//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type VoteCastEvent struct {
	PinID     int64     `json:"pin_id"`
	VoterID   string    `json:"voter_id"`
	Type      string    `json:"vote_type"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CastAt    time.Time `json:"cast_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	pinID := flag.Int64("pin", 1, "Pin id for the test event")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := VoteCastEvent{
		PinID:     *pinID,
		VoterID:   uuid.NewString(),
		Type:      "up",
		Upvotes:   1,
		Downvotes: 0,
		CastAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:pins:votes",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: stream:pins:votes\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Pin ID: %d\n", event.PinID)
	fmt.Printf("   Voter: %s\n", event.VoterID)
	fmt.Println("\nThe stats worker should recompute statistics shortly; check GET /stats.")
}
