package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diaryURL = "https://docs.google.com/spreadsheets/d/diary1/edit"

func diarySheet() [][]string {
	return [][]string{
		{"설정: 공유 금지"},
		{"date", "emotion", "gratitude", "message", "teacher_note"},
		{"2024-05-01", "😀 긍정 - 신남", "고마워요", "선생님 안녕하세요", "참 잘했어요"},
		{"2024-05-02", "😢 부정 - 속상함"},
		{"2024-05-03", "", "", "할 말 있어요", "", "extra cell ignored"},
	}
}

func TestDiaryRepositoryReadRecords(t *testing.T) {
	client := &fakeSheetClient{rows: diarySheet()}
	repo := NewDiaryRepository(client, nil)

	book, err := repo.ReadRecords(context.Background(), diaryURL)
	require.NoError(t, err)

	require.Len(t, book.Entries, 3)
	assert.Equal(t, []string{"date", "emotion", "gratitude", "message", "teacher_note"}, book.Header)
	assert.Len(t, book.RawRows, 3)

	full := book.Entries[0]
	assert.Equal(t, "2024-05-01", full.Date)
	require.NotNil(t, full.Emotion)
	assert.Equal(t, "😀 긍정 - 신남", *full.Emotion)
	require.NotNil(t, full.TeacherNote)
	assert.Equal(t, "참 잘했어요", *full.TeacherNote)

	// short row: missing trailing fields are nil
	short := book.Entries[1]
	assert.Nil(t, short.Gratitude)
	assert.Nil(t, short.Message)
	assert.Nil(t, short.TeacherNote)

	// blank cells are nil, extras beyond the field list are dropped
	sparse := book.Entries[2]
	assert.Nil(t, sparse.Emotion)
	require.NotNil(t, sparse.Message)
	assert.Equal(t, "할 말 있어요", *sparse.Message)
}

func TestDiaryRepositoryReadRecordsPrefixOnly(t *testing.T) {
	client := &fakeSheetClient{rows: [][]string{
		{"config"},
		{"date", "emotion"},
	}}
	repo := NewDiaryRepository(client, nil)

	book, err := repo.ReadRecords(context.Background(), diaryURL)
	require.NoError(t, err)
	assert.Empty(t, book.Entries)
	assert.Empty(t, book.RawRows)
}

func TestDiaryRepositoryReadRecordsIdempotent(t *testing.T) {
	client := &fakeSheetClient{rows: diarySheet()}
	repo := NewDiaryRepository(client, nil)

	first, err := repo.ReadRecords(context.Background(), diaryURL)
	require.NoError(t, err)
	second, err := repo.ReadRecords(context.Background(), diaryURL)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiaryRepositoryWriteCell(t *testing.T) {
	client := &fakeSheetClient{}
	repo := NewDiaryRepository(client, nil)

	err := repo.WriteCell(context.Background(), diaryURL, 4, 5, "힘내요")
	require.NoError(t, err)
	require.Len(t, client.writes, 1)
	assert.Equal(t, cellWrite{locator: diaryURL, row: 4, col: 5, value: "힘내요"}, client.writes[0])
}
