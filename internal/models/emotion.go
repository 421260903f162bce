package models

import "strings"

// EmotionGroup is one of the three coarse sentiment buckets a well-formed
// emotion string resolves to.
type EmotionGroup string

const (
	GroupPositive EmotionGroup = "positive"
	GroupNeutral  EmotionGroup = "neutral"
	GroupNegative EmotionGroup = "negative"
)

// Counting buckets for emotion values that do not resolve to a group.
// Malformed and absent values are counted here, never dropped.
const (
	BucketUnclassified = "unclassified"
	BucketMissing      = "missing"
)

// EmotionKind tags the outcome of parsing an emotion string.
type EmotionKind int

const (
	EmotionMissing EmotionKind = iota
	EmotionMalformed
	EmotionKnown
)

// Emotion is the tagged result of parsing a raw emotion value. Group and
// Detail are meaningful only when Kind is EmotionKnown; Raw holds the
// original string for the malformed case.
type Emotion struct {
	Kind   EmotionKind
	Group  EmotionGroup
	Detail string
	Raw    string
}

// Bucket returns the counting bucket for distribution views.
func (e Emotion) Bucket() string {
	switch e.Kind {
	case EmotionKnown:
		return string(e.Group)
	case EmotionMalformed:
		return BucketUnclassified
	default:
		return BucketMissing
	}
}

const emotionSeparator = " - "

// Group labels as they appear in the sheets, e.g. "😀 긍정 - 신남". The
// prefix before the separator carries an emoji, so matching is by keyword
// containment rather than equality.
var groupKeywords = []struct {
	keyword string
	group   EmotionGroup
}{
	{"긍정", GroupPositive},
	{"중립", GroupNeutral},
	{"부정", GroupNegative},
}

// ParseEmotion classifies a raw emotion value into a tagged result so that
// downstream grouping can match exhaustively on Kind.
func ParseEmotion(raw *string) Emotion {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Emotion{Kind: EmotionMissing}
	}

	value := strings.TrimSpace(*raw)
	prefix, detail, found := strings.Cut(value, emotionSeparator)
	if !found {
		return Emotion{Kind: EmotionMalformed, Raw: value}
	}

	for _, gk := range groupKeywords {
		if strings.Contains(prefix, gk.keyword) || strings.EqualFold(strings.TrimSpace(prefix), string(gk.group)) {
			return Emotion{Kind: EmotionKnown, Group: gk.group, Detail: strings.TrimSpace(detail)}
		}
	}

	return Emotion{Kind: EmotionMalformed, Raw: value}
}
