package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"backend/model"
	"backend/services"
	"backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChallengeRepo stores one challenge document per user, replaced whole on
// every write. There is no merge: the document carries a version stamp and
// the last writer wins.
type ChallengeRepo struct {
	MongoCollection *mongo.Collection
}

func GetChallengeRepo(client *mongo.Client) *ChallengeRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("CHALLENGE_COLLECTION")
	return &ChallengeRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Get loads the user's challenge blob. A missing document or one that fails
// to decode yields a fresh default blob without touching storage. If the
// stored blob predates userSettings, the legacy migration runs and the
// migrated shape is persisted immediately.
func (r *ChallengeRepo) Get(ctx context.Context, userID, today string) (*model.ChallengeData, error) {
	timer := utils.TrackDBOperation("find", "challenge_data")
	defer timer.ObserveDuration()

	if userID == "" {
		utils.TrackError("database", "empty_user_id")
		return nil, fmt.Errorf("userID cannot be empty")
	}

	if services.GlobalChallengeCache != nil {
		if data, err := services.GlobalChallengeCache.Get(ctx, userID); err == nil && data != nil {
			utils.TrackCacheOperation("challenge", true)
			return data, nil
		}
		utils.TrackCacheOperation("challenge", false)
	}

	var data model.ChallengeData
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&data)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			// Malformed blobs are treated as absent, never surfaced.
			utils.TrackError("database", "challenge_decode_failed")
			log.Printf("Discarding unreadable challenge blob for user %s: %v", userID, err)
		}
		return model.DefaultChallengeData(userID, today), nil
	}

	if data.DailyData == nil {
		data.DailyData = map[string]model.DailyRecord{}
	}

	if data.MigrateLegacyFields() {
		utils.TrackChallengeOperation("migrate")
		log.Printf("Migrated legacy challenge blob for user %s", userID)
		if err := r.Replace(ctx, &data); err != nil {
			return nil, fmt.Errorf("failed to persist migrated challenge data: %w", err)
		}
		return &data, nil
	}

	if services.GlobalChallengeCache != nil {
		if err := services.GlobalChallengeCache.Set(ctx, &data); err != nil {
			log.Printf("Warning: Failed to cache challenge data: %v", err)
		}
	}

	return &data, nil
}

// Replace upserts the full blob with a fresh version stamp.
func (r *ChallengeRepo) Replace(ctx context.Context, data *model.ChallengeData) error {
	timer := utils.TrackDBOperation("replace", "challenge_data")
	defer timer.ObserveDuration()

	if data == nil || data.UserID == "" {
		utils.TrackError("database", "invalid_challenge_data")
		return fmt.Errorf("challenge data requires a user id")
	}

	data.UpdatedAt = time.Now()
	data.Version = data.UpdatedAt.UnixMilli()

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"user_id": data.UserID}, data, opts)
	if err != nil {
		utils.TrackError("database", "challenge_replace_failed")
		return fmt.Errorf("failed to replace challenge data: %w", err)
	}

	if services.GlobalChallengeCache != nil {
		if err := services.GlobalChallengeCache.Invalidate(ctx, data.UserID); err != nil {
			log.Printf("Warning: Failed to invalidate challenge cache: %v", err)
		}
	}

	return nil
}
