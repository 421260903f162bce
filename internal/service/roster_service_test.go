package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/maum-diary-api/internal/models"
	appErrors "github.com/noah-isme/maum-diary-api/pkg/errors"
)

type fakeRosterLoader struct {
	students []models.Student
	err      error
	calls    int
}

func (f *fakeRosterLoader) Load(context.Context) ([]models.Student, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func TestStudentsLoadsOncePerSession(t *testing.T) {
	loader := &fakeRosterLoader{students: []models.Student{
		{Name: "A", SourceLocator: locatorA},
		{Name: "B", SourceLocator: locatorB},
	}}
	svc := NewRosterService(loader, zap.NewNop())

	first, err := svc.Students(context.Background())
	require.NoError(t, err)
	second, err := svc.Students(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.calls)
}

func TestStudentsPreservesSourceOrder(t *testing.T) {
	loader := &fakeRosterLoader{students: []models.Student{
		{Name: "C", SourceLocator: locatorC},
		{Name: "A", SourceLocator: locatorA},
		{Name: "B", SourceLocator: locatorB},
	}}
	svc := NewRosterService(loader, zap.NewNop())

	students, err := svc.Students(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "C", students[0].Name)
	assert.Equal(t, "A", students[1].Name)
	assert.Equal(t, "B", students[2].Name)
}

func TestStudentsRetriesAfterLoadFailure(t *testing.T) {
	loader := &fakeRosterLoader{err: appErrors.ErrRosterUnavailable}
	svc := NewRosterService(loader, zap.NewNop())

	_, err := svc.Students(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrRosterUnavailable)

	// a failed load must not poison the session
	loader.err = nil
	loader.students = []models.Student{{Name: "A", SourceLocator: locatorA}}
	students, err := svc.Students(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 2, loader.calls)
}

func TestFindResolvesByName(t *testing.T) {
	loader := &fakeRosterLoader{students: []models.Student{
		{Name: "A", SourceLocator: locatorA},
		{Name: "B", SourceLocator: locatorB},
	}}
	svc := NewRosterService(loader, zap.NewNop())

	student, err := svc.Find(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, locatorB, student.SourceLocator)

	_, err = svc.Find(context.Background(), "Z")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestResetForcesReload(t *testing.T) {
	loader := &fakeRosterLoader{students: []models.Student{{Name: "A", SourceLocator: locatorA}}}
	svc := NewRosterService(loader, zap.NewNop())

	_, err := svc.Students(context.Background())
	require.NoError(t, err)

	svc.Reset()

	_, err = svc.Students(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}
