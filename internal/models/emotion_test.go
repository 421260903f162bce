package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseEmotionKnownGroups(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		group  EmotionGroup
		detail string
	}{
		{"positive with emoji", "😀 긍정 - 신남", GroupPositive, "신남"},
		{"neutral", "😐 중립 - 그냥 그래요", GroupNeutral, "그냥 그래요"},
		{"negative", "😢 부정 - 속상함", GroupNegative, "속상함"},
		{"english label", "positive - excited", GroupPositive, "excited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEmotion(strPtr(tt.raw))
			assert.Equal(t, EmotionKnown, got.Kind)
			assert.Equal(t, tt.group, got.Group)
			assert.Equal(t, tt.detail, got.Detail)
			assert.Equal(t, string(tt.group), got.Bucket())
		})
	}
}

func TestParseEmotionMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no separator", "긍정 신남"},
		{"unknown group", "🤖 로봇 - 무표정"},
		{"separator only detail", "- 신남"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEmotion(strPtr(tt.raw))
			assert.Equal(t, EmotionMalformed, got.Kind)
			assert.Equal(t, BucketUnclassified, got.Bucket())
			assert.NotEmpty(t, got.Raw)
		})
	}
}

func TestParseEmotionMissing(t *testing.T) {
	assert.Equal(t, EmotionMissing, ParseEmotion(nil).Kind)
	assert.Equal(t, EmotionMissing, ParseEmotion(strPtr("")).Kind)
	assert.Equal(t, EmotionMissing, ParseEmotion(strPtr("   ")).Kind)
	assert.Equal(t, BucketMissing, ParseEmotion(nil).Bucket())
}
