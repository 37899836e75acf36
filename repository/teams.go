package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"backend/model"
	"backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamRepo struct {
	MongoCollection *mongo.Collection
}

func GetTeamRepo(client *mongo.Client) *TeamRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TEAMS_COLLECTION")
	return &TeamRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *TeamRepo) CreateTeam(ctx context.Context, team *model.Team) error {
	timer := utils.TrackDBOperation("insert", "teams")
	defer timer.ObserveDuration()

	if team == nil || team.TeamCode == "" {
		utils.TrackError("database", "invalid_team_data")
		return errors.New("team code is required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, team); err != nil {
		utils.TrackError("database", "team_creation_failed")
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

func (r *TeamRepo) FindTeamByCode(ctx context.Context, teamCode string) (*model.Team, error) {
	timer := utils.TrackDBOperation("find", "teams")
	defer timer.ObserveDuration()

	var team model.Team
	err := r.MongoCollection.FindOne(ctx, bson.M{"team_code": teamCode}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "team_lookup_error")
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	return &team, nil
}

// AddMember appends a member and bumps the count. The filter excludes teams
// the user already belongs to, so a duplicate join matches nothing.
func (r *TeamRepo) AddMember(ctx context.Context, teamCode string, member model.TeamMember) error {
	timer := utils.TrackDBOperation("update", "teams")
	defer timer.ObserveDuration()

	filter := bson.M{
		"team_code":       teamCode,
		"members.user_id": bson.M{"$ne": member.UserID},
	}
	update := bson.M{
		"$push": bson.M{"members": member},
		"$inc":  bson.M{"member_count": 1},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "team_join_failed")
		return fmt.Errorf("failed to join team: %w", err)
	}

	if result.MatchedCount == 0 {
		return errors.New("team not found or already a member")
	}

	return nil
}
