package models

// Field names of a diary sheet in storage order. Rows are mapped onto these
// positionally; the header row in the sheet is never consulted for identity.
var EntryFields = []string{"date", "emotion", "gratitude", "message", "teacher_note"}

// Offsets of the two prefix rows in a diary sheet: row 1 is free-form config,
// row 2 is the header. Data starts at storage row 3 (1-based).
const (
	HeaderRowIndex = 1
	DataRowOffset  = 3
)

// TeacherNoteColumnLabel is looked up in the live header row to find the
// note column. TeacherNoteFallbackColumn (1-based) is used when the header
// has drifted and no longer carries the label.
const (
	TeacherNoteColumnLabel    = "teacher_note"
	TeacherNoteFallbackColumn = 5
)

// DiaryEntry is one dated record of a student's diary sheet. Optional fields
// are nil when the source cell is absent or blank.
type DiaryEntry struct {
	Date        string  `json:"date"`
	Emotion     *string `json:"emotion"`
	Gratitude   *string `json:"gratitude"`
	Message     *string `json:"message"`
	TeacherNote *string `json:"teacher_note"`
}

// Entries is an ordered sequence of diary entries, sheet order preserved.
type Entries []DiaryEntry

// FindByDate returns the first entry whose date string-equals the given
// value. First occurrence wins when a sheet holds duplicate dates; every
// date lookup in the system goes through here so that rule cannot diverge
// per call site.
func (e Entries) FindByDate(date string) (DiaryEntry, bool) {
	for _, entry := range e {
		if entry.Date == date {
			return entry, true
		}
	}
	return DiaryEntry{}, false
}

// DiaryBook is a student's full diary state as cached per session: parsed
// entries, the raw rows they came from, and the live header row. Raw rows
// are kept because note writes resolve the storage row positionally.
type DiaryBook struct {
	Entries Entries    `json:"entries"`
	RawRows [][]string `json:"raw_rows"`
	Header  []string   `json:"header"`
}

// RowForDate returns the 1-based storage row of the first raw row whose
// first cell equals date, accounting for the two-row prefix.
func (b *DiaryBook) RowForDate(date string) (int, bool) {
	for i, row := range b.RawRows {
		if len(row) > 0 && row[0] == date {
			return i + DataRowOffset, true
		}
	}
	return 0, false
}

// NoteColumn resolves the 1-based teacher-note column from the header row,
// falling back to the fixed default when the label is absent.
func (b *DiaryBook) NoteColumn() int {
	for i, label := range b.Header {
		if label == TeacherNoteColumnLabel {
			return i + 1
		}
	}
	return TeacherNoteFallbackColumn
}
