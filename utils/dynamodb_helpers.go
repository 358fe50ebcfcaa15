package utils

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ListContains reports whether a list attribute holds the given string value.
// Handles both list-of-strings and string-set storage.
func ListContains(item map[string]types.AttributeValue, field, value string) bool {
	attr, ok := item[field]
	if !ok {
		return false
	}
	switch list := attr.(type) {
	case *types.AttributeValueMemberL:
		for _, member := range list.Value {
			if s, ok := member.(*types.AttributeValueMemberS); ok && s.Value == value {
				return true
			}
		}
	case *types.AttributeValueMemberSS:
		for _, s := range list.Value {
			if s == value {
				return true
			}
		}
	}
	return false
}

// UnmarshalItem decodes a DynamoDB attribute map into out.
func UnmarshalItem(item map[string]types.AttributeValue, out interface{}) error {
	return attributevalue.UnmarshalMap(item, out)
}
