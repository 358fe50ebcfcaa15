package services

import (
	"context"
	"fmt"
	"math/rand"

	"uclmatch_server/models"
	"uclmatch_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CandidateService produces the swipe deck: every user except the viewer, in
// a fresh uniform random order on every load. Nothing here is persisted.
type CandidateService struct {
	Dynamo DynamoAPI

	// Rand is the shuffle source. Left nil, the global source is used;
	// tests seed their own.
	Rand *rand.Rand
}

func NewCandidateService(dynamo DynamoAPI) *CandidateService {
	return &CandidateService{Dynamo: dynamo}
}

// LoadCandidates fetches the full user pool, drops excludeID, and shuffles.
// An empty pool yields an empty slice, not an error.
func (cs *CandidateService) LoadCandidates(ctx context.Context, excludeID string) ([]models.UserProfile, error) {
	var candidates []models.UserProfile
	err := cs.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "uid") != excludeID
	}, nil, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	cs.shuffle(candidates)
	return candidates, nil
}

// Fisher–Yates: walk from the last index down, swap with a uniform draw
// from [0, i].
func (cs *CandidateService) shuffle(candidates []models.UserProfile) {
	intn := rand.Intn
	if cs.Rand != nil {
		intn = cs.Rand.Intn
	}
	for i := len(candidates) - 1; i > 0; i-- {
		j := intn(i + 1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
}
