package services

import (
	"context"
	"testing"

	"uclmatch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidUCLEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"student@ucl.ac.uk", true},
		{"STUDENT@UCL.AC.UK", true},
		{"first.last@ucl.ac.uk", true},
		{"student@gmail.com", false},
		{"student@ucl.ac.uk.evil.com", false},
		{"stu dent@ucl.ac.uk", false},
		{"@ucl.ac.uk", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidUCLEmail(tt.email), tt.email)
	}
}

// newAuthFixture backs Register/SignIn with a one-table in-memory user store.
func newAuthFixture(t *testing.T) (*AuthService, *[]models.UserProfile) {
	t.Helper()
	users := &[]models.UserProfile{}
	dynamo := &fakeDynamo{}
	dynamo.putItem = func(_ context.Context, _ string, item interface{}) error {
		*users = append(*users, item.(models.UserProfile))
		return nil
	}
	dynamo.scan = func(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
		records := make([]interface{}, 0, len(*users))
		for _, u := range *users {
			records = append(records, u)
		}
		return scanFromSlice(records)(ctx, tableName, filterFunc, excludeFields, result)
	}
	profiles := NewUserProfileService(dynamo)
	return NewAuthService(profiles), users
}

func TestRegisterRejectsNonUCLEmail(t *testing.T) {
	as, users := newAuthFixture(t)

	_, err := as.Register(context.Background(), "Sam", "student@gmail.com", "hunter22")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, *users)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	as, _ := newAuthFixture(t)

	_, err := as.Register(context.Background(), "", "student@ucl.ac.uk", "hunter22")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = as.Register(context.Background(), "Sam", "student@ucl.ac.uk", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRegisterCreatesMinimalProfile(t *testing.T) {
	as, users := newAuthFixture(t)

	profile, err := as.Register(context.Background(), "Sam", "STUDENT@UCL.AC.UK", "hunter22")
	require.NoError(t, err)
	require.Len(t, *users, 1)

	assert.NotEmpty(t, profile.UserID)
	assert.Equal(t, "student@ucl.ac.uk", profile.EmailID)
	assert.Equal(t, "Sam", profile.Name)
	assert.NotEmpty(t, profile.CreatedAt)
	assert.False(t, profile.EmailVerified)
	assert.NotEqual(t, "hunter22", profile.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	as, users := newAuthFixture(t)

	_, err := as.Register(context.Background(), "Sam", "student@ucl.ac.uk", "hunter22")
	require.NoError(t, err)
	_, err = as.Register(context.Background(), "Sam Again", "Student@ucl.ac.uk", "hunter23")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Len(t, *users, 1)
}

func TestVerifyEmailSetsVerifiedFlag(t *testing.T) {
	// The profile store rejects emailVerified from callers; only the
	// verification-token flow may write it.
	var expr string
	dynamo := &fakeDynamo{
		updateItem: func(_ context.Context, _ string, updateExpression string, _ map[string]types.AttributeValue, _ map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
			expr = updateExpression
			return attributevalue.MarshalMap(models.UserProfile{UserID: "u1", EmailVerified: true})
		},
	}
	as := NewAuthService(NewUserProfileService(dynamo))
	as.verifications["tok"] = "u1"

	require.NoError(t, as.VerifyEmail(context.Background(), "tok"))
	assert.Contains(t, expr, "#emailVerified = :emailVerified")

	// The token is single-use.
	err := as.VerifyEmail(context.Background(), "tok")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSignInRoundTrip(t *testing.T) {
	as, _ := newAuthFixture(t)

	registered, err := as.Register(context.Background(), "Sam", "student@ucl.ac.uk", "hunter22")
	require.NoError(t, err)

	token, profile, err := as.SignIn(context.Background(), "student@ucl.ac.uk", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.UserID, profile.UserID)

	uid, err := as.ResolveSession(token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, uid)

	as.SignOut(token)
	_, err = as.ResolveSession(token)
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestSignInWrongPassword(t *testing.T) {
	as, _ := newAuthFixture(t)

	_, err := as.Register(context.Background(), "Sam", "student@ucl.ac.uk", "hunter22")
	require.NoError(t, err)

	_, _, err = as.SignIn(context.Background(), "student@ucl.ac.uk", "wrong")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)

	_, _, err = as.SignIn(context.Background(), "stranger@ucl.ac.uk", "hunter22")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestResolveSessionEmptyToken(t *testing.T) {
	as, _ := newAuthFixture(t)
	_, err := as.ResolveSession("")
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}
