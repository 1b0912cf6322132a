package db

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbuddy/internal/models"
	"taskbuddy/internal/push"
	"taskbuddy/internal/storage"
)

// memStore is an in-memory ObjectStore for mutation tests.
type memStore struct {
	objects map[string][]byte
	failing bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Upload(bucket, name string, data []byte) error {
	if s.failing {
		return fmt.Errorf("upload rejected")
	}
	s.objects[bucket+"/"+name] = data
	return nil
}

func (s *memStore) Download(bucket, name string) ([]byte, error) {
	data, ok := s.objects[bucket+"/"+name]
	if !ok {
		return nil, fmt.Errorf("object not found")
	}
	return data, nil
}

func (s *memStore) Delete(bucket, name string) error {
	delete(s.objects, bucket+"/"+name)
	return nil
}

func newMutationService(t *testing.T, store storage.ObjectStore, bus *push.Bus) *TaskService {
	t.Helper()
	gdb, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	svc := NewTaskService(gdb, store, bus)
	svc.SetClock(func() time.Time { return testClock })
	return svc
}

func TestSaveTaskDefaultsAndAppendPosition(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	first := mustSave(t, svc, SaveTaskRequest{Title: "first"})
	second := mustSave(t, svc, SaveTaskRequest{Title: "second"})
	doing := mustSave(t, svc, SaveTaskRequest{Title: "doing", Status: models.StatusInProgress})

	a, err := svc.GetTask(first)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, a.Status)
	assert.Equal(t, models.CategoryWork, a.Category)
	assert.Equal(t, 0, a.Position)

	b, err := svc.GetTask(second)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Position)

	// Positions count within one (user, status) column.
	c, err := svc.GetTask(doing)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Position)
}

func TestSaveTaskValidation(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	_, err := svc.SaveTask(SaveTaskRequest{UserID: testUser})
	assert.ErrorContains(t, err, "title")

	_, err = svc.SaveTask(SaveTaskRequest{Title: "no owner"})
	assert.ErrorContains(t, err, "user id")

	long := make([]byte, models.MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.SaveTask(SaveTaskRequest{UserID: testUser, Title: "t", Description: string(long)})
	assert.ErrorContains(t, err, "description")

	_, err = svc.SaveTask(SaveTaskRequest{UserID: testUser, Title: "t", Status: "Archived"})
	assert.ErrorContains(t, err, "invalid status")

	_, err = svc.SaveTask(SaveTaskRequest{UserID: testUser, Title: "t", Category: "Errands"})
	assert.ErrorContains(t, err, "invalid category")
}

func TestSaveTaskUpdateKeepsPosition(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	mustSave(t, svc, SaveTaskRequest{Title: "filler"})
	id := mustSave(t, svc, SaveTaskRequest{Title: "original"})

	_, err := svc.SaveTask(SaveTaskRequest{
		TaskID:   id,
		UserID:   testUser,
		Title:    "renamed",
		Category: models.CategoryPersonal,
	})
	require.NoError(t, err)

	task, err := svc.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, models.CategoryPersonal, task.Category)
	assert.Equal(t, 1, task.Position)

	// Even a status change through the edit path keeps the stored
	// position; only the reorder path renumbers.
	_, err = svc.SaveTask(SaveTaskRequest{
		TaskID: id,
		UserID: testUser,
		Title:  "renamed",
		Status: models.StatusInProgress,
	})
	require.NoError(t, err)

	task, err = svc.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, 1, task.Position)
}

func TestSaveTaskStoresTags(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	id := mustSave(t, svc, SaveTaskRequest{Title: "tagged", Tags: []string{"urgent", "", "q3"}})

	task, err := svc.GetTask(id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"urgent", "q3"}, task.TagNames())
}

func TestSaveTaskAttachmentUploadAndLink(t *testing.T) {
	store := newMemStore()
	svc := newMutationService(t, store, nil)

	id := mustSave(t, svc, SaveTaskRequest{
		Title:          "with file",
		AttachmentName: "notes.txt",
		Attachment:     []byte("hello"),
	})

	task, err := svc.GetTask(id)
	require.NoError(t, err)
	require.Len(t, task.Attachments, 1)

	object := task.Attachments[0].FileURL
	assert.Equal(t, fmt.Sprintf("%s/%s-%d.txt", testUser, id, testClock.Unix()), object)

	data, err := store.Download(storage.BucketTaskAttachments, object)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestSaveTaskAttachmentFailureKeepsTaskRow(t *testing.T) {
	store := newMemStore()
	store.failing = true
	svc := newMutationService(t, store, nil)

	_, err := svc.SaveTask(SaveTaskRequest{
		UserID:         testUser,
		Title:          "doomed upload",
		AttachmentName: "notes.txt",
		Attachment:     []byte("hello"),
	})
	require.ErrorContains(t, err, "attachment")

	// The task row was committed before the upload ran.
	tasks, err := svc.FetchTasks(testUser, QueryOptions{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "doomed upload", tasks[0].Title)
	assert.Empty(t, tasks[0].Attachments)
}

func TestUpdateStatus(t *testing.T) {
	svc := newMutationService(t, nil, nil)
	id := mustSave(t, svc, SaveTaskRequest{Title: "moving"})

	require.NoError(t, svc.UpdateStatus(id, models.StatusCompleted))

	task, err := svc.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)

	assert.ErrorContains(t, svc.UpdateStatus(id, "Archived"), "invalid status")
}

func TestDeleteTask(t *testing.T) {
	svc := newMutationService(t, nil, nil)
	id := mustSave(t, svc, SaveTaskRequest{Title: "gone"})

	require.NoError(t, svc.DeleteTask(id))

	_, err := svc.GetTask(id)
	assert.Error(t, err)

	assert.Error(t, svc.DeleteTask(id))
}

func TestBulkUpdateStatus(t *testing.T) {
	svc := newMutationService(t, nil, nil)
	a := mustSave(t, svc, SaveTaskRequest{Title: "a"})
	b := mustSave(t, svc, SaveTaskRequest{Title: "b"})

	require.NoError(t, svc.BulkUpdateStatus([]string{a, b}, models.StatusCompleted))

	for _, id := range []string{a, b} {
		task, err := svc.GetTask(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, task.Status)
	}
}

func TestBulkDeleteContinuesPastFailures(t *testing.T) {
	svc := newMutationService(t, nil, nil)
	a := mustSave(t, svc, SaveTaskRequest{Title: "a"})
	b := mustSave(t, svc, SaveTaskRequest{Title: "b"})

	err := svc.BulkDelete([]string{a, "missing-id", b})
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing-id")

	// The failing middle item did not stop the rest of the batch.
	tasks, fetchErr := svc.FetchTasks(testUser, QueryOptions{})
	require.NoError(t, fetchErr)
	assert.Empty(t, tasks)
}

func TestUpdatePositionsRewritesColumn(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	a := mustSave(t, svc, SaveTaskRequest{Title: "a"})
	b := mustSave(t, svc, SaveTaskRequest{Title: "b"})
	c := mustSave(t, svc, SaveTaskRequest{Title: "c"})

	tasks, err := svc.FetchTasks(testUser, QueryOptions{})
	require.NoError(t, err)

	// Reverse the column.
	ordered := []models.Task{tasks[2], tasks[1], tasks[0]}
	require.NoError(t, svc.UpdatePositions(testUser, models.StatusTodo, ordered))

	tasks, err = svc.FetchTasks(testUser, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{c, b, a}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	for i, task := range tasks {
		assert.Equal(t, i, task.Position)
	}

	assert.ErrorContains(t, svc.UpdatePositions("", models.StatusTodo, ordered), "user id")
}

func TestMutationsBumpGeneration(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	gen := svc.Generation()
	id := mustSave(t, svc, SaveTaskRequest{Title: "tracked"})
	assert.Greater(t, svc.Generation(), gen)

	gen = svc.Generation()
	require.NoError(t, svc.UpdateStatus(id, models.StatusInProgress))
	assert.Greater(t, svc.Generation(), gen)

	gen = svc.Generation()
	require.NoError(t, svc.DeleteTask(id))
	assert.Greater(t, svc.Generation(), gen)
}

func TestMutationsPublishEvents(t *testing.T) {
	bus := push.NewBus()
	svc := newMutationService(t, nil, bus)

	events := bus.Subscribe()
	defer bus.Unsubscribe(events)

	id := mustSave(t, svc, SaveTaskRequest{Title: "published"})
	ev := <-events
	assert.Equal(t, push.Insert, ev.Kind)
	assert.Equal(t, id, ev.Task.ID)

	require.NoError(t, svc.UpdateStatus(id, models.StatusCompleted))
	ev = <-events
	assert.Equal(t, push.Update, ev.Kind)
	assert.Equal(t, models.StatusCompleted, ev.Task.Status)

	require.NoError(t, svc.DeleteTask(id))
	ev = <-events
	assert.Equal(t, push.Delete, ev.Kind)
	assert.Equal(t, id, ev.Task.ID)
}

func TestActivityLogNewestFirst(t *testing.T) {
	svc := newMutationService(t, nil, nil)

	id := mustSave(t, svc, SaveTaskRequest{Title: "audited"})
	require.NoError(t, svc.UpdateStatus(id, models.StatusInProgress))
	require.NoError(t, svc.UpdateStatus(id, models.StatusCompleted))

	logs, err := svc.ActivityLogs(id)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	assert.Equal(t, "Status Changed", logs[0].Action)
	assert.Contains(t, logs[0].Description, models.StatusCompleted)
	assert.Equal(t, "Status Changed", logs[1].Action)
	assert.Contains(t, logs[1].Description, models.StatusInProgress)
	assert.Equal(t, "Task Created", logs[2].Action)
}
