package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"uclmatch_server/models"
	"uclmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserProfileService is the profile store: reads and field-level merge writes
// for a user's own document, a live change feed, and a per-reference resolve
// cache used when rendering message senders.
type UserProfileService struct {
	Dynamo DynamoAPI

	events *notifier

	cacheMu sync.RWMutex
	cache   map[string]*models.UserProfile
}

func NewUserProfileService(dynamo DynamoAPI) *UserProfileService {
	return &UserProfileService{
		Dynamo: dynamo,
		events: newNotifier(),
		cache:  make(map[string]*models.UserProfile),
	}
}

// GetProfile retrieves a user profile by ID
func (ups *UserProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"uid": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// FindByEmail looks a profile up by its registration email (case-insensitive).
// Returns nil without error when no profile matches.
func (ups *UserProfileService) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	wanted := strings.ToLower(email)

	var profiles []models.UserProfile
	err := ups.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		return strings.ToLower(utils.ExtractString(item, "email")) == wanted
	}, nil, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile by email: %w", err)
	}

	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// protectedProfileFields are owned by the auth flow and cannot be merged
// through the profile store; emailVerified in particular is only set by
// consuming a verification token.
var protectedProfileFields = map[string]bool{
	"uid":           true,
	"email":         true,
	"emailVerified": true,
	"passwordHash":  true,
}

// UpdateProfileFields merges the given fields into the stored profile.
// Last-write-wins, no concurrency check. Identity and credential fields
// are rejected with ErrValidation.
func (ups *UserProfileService) UpdateProfileFields(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	for field := range updates {
		if protectedProfileFields[field] {
			return nil, fmt.Errorf("%w: %s cannot be changed here", models.ErrValidation, field)
		}
	}
	return ups.applyUpdate(ctx, userID, updates)
}

// applyUpdate skips the protected-field gate; the auth flow uses it to write
// the fields it owns.
func (ups *UserProfileService) applyUpdate(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}

	key := map[string]types.AttributeValue{
		"uid": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		attr, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field '%s': %v", models.ErrValidation, k, err)
		}
		expressionAttributeValues[placeholder] = attr
		expressionAttributeNames[attributeName] = k
	}

	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UsersTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}

	ups.cacheMu.Lock()
	ups.cache[userID] = &updatedProfile
	ups.cacheMu.Unlock()

	ups.events.notify("user:" + userID)

	return &updatedProfile, nil
}

// UpdateProfileField merges a single field into the stored profile.
func (ups *UserProfileService) UpdateProfileField(ctx context.Context, userID, field string, value interface{}) (*models.UserProfile, error) {
	return ups.UpdateProfileFields(ctx, userID, map[string]interface{}{field: value})
}

// Subscribe registers a live listener on a profile. onChange receives the
// latest snapshot after every write, including the caller's own. The returned
// handle must be unsubscribed when the consumer goes away.
func (ups *UserProfileService) Subscribe(userID string, onChange func(models.UserProfile)) *Subscription {
	return ups.events.subscribe("user:"+userID, func() {
		profile, err := ups.ResolveUser(context.Background(), userID)
		if err != nil {
			log.Printf("profile subscription for %s: %v", userID, err)
			return
		}
		onChange(*profile)
	})
}

// ResolveUser returns the profile for a sender reference, consulting the
// session cache first. Writes through UpdateProfileFields refresh the cache.
func (ups *UserProfileService) ResolveUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	ups.cacheMu.RLock()
	cached, ok := ups.cache[userID]
	ups.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	profile, err := ups.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	ups.cacheMu.Lock()
	ups.cache[userID] = profile
	ups.cacheMu.Unlock()

	return profile, nil
}
