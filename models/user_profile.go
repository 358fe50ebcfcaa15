package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID        string   `dynamodbav:"uid" json:"uid"`                                         // ✅ Partition Key, immutable
	EmailID       string   `dynamodbav:"email,omitempty" json:"email,omitempty"`                 // UCL email, set at registration
	EmailVerified bool     `dynamodbav:"emailVerified,omitempty" json:"emailVerified,omitempty"` // Email verification status
	Name          string   `dynamodbav:"name,omitempty" json:"name,omitempty"`                   // Display name
	Age           int      `dynamodbav:"age,omitempty" json:"age,omitempty"`                     // Optional
	Course        string   `dynamodbav:"course,omitempty" json:"course,omitempty"`               // Degree / university course
	Bio           string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`                     // Short biography
	Interests     []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`         // Interest tags, ordered
	Societies     []string `dynamodbav:"societies,omitempty" json:"societies,omitempty"`         // Society names, ordered
	Gender        string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`               // Free-text gender
	GenderCustom  string   `dynamodbav:"genderCustom,omitempty" json:"genderCustom,omitempty"`   // Optional custom value
	Avatar        string   `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`               // Avatar download URL
	CreatedAt     string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`         // RFC3339
	PasswordHash  string   `dynamodbav:"passwordHash,omitempty" json:"-"`                        // bcrypt hash, never serialized out
}

// UsersTable is the DynamoDB table name for user profiles
const UsersTable = "Users"
