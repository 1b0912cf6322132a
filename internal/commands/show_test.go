package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbuddy/internal/models"
	"taskbuddy/internal/storage"
)

// memStore is an in-memory ObjectStore for command tests.
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Upload(bucket, name string, data []byte) error {
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

func TestRenderTaskDetails(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Upload(storage.BucketTaskAttachments, "u1/t1-99.txt", []byte("blob")))

	task := &models.Task{
		ID:          "t1",
		Title:       "Ship it",
		Description: "Final release steps",
		Status:      models.StatusInProgress,
		Category:    models.CategoryWork,
		DueDate:     time.Now().AddDate(0, 0, 3),
		Tags:        []models.TaskTag{{Tag: "urgent"}},
		Attachments: []models.TaskAttachment{{FileURL: "u1/t1-99.txt"}},
	}

	var out bytes.Buffer
	renderTaskDetails(&out, store, task, "")

	text := out.String()
	assert.Contains(t, text, "Ship it")
	assert.Contains(t, text, "Final release steps")
	assert.Contains(t, text, models.StatusInProgress)
	assert.Contains(t, text, "urgent")
	assert.Contains(t, text, "u1/t1-99.txt (4 bytes)")
}

func TestRenderTaskDetailsSavesAttachment(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Upload(storage.BucketTaskAttachments, "u1/t1-99.txt", []byte("blob")))

	task := &models.Task{
		ID:          "t1",
		Title:       "Ship it",
		Status:      models.StatusTodo,
		Category:    models.CategoryWork,
		Attachments: []models.TaskAttachment{{FileURL: "u1/t1-99.txt"}},
	}

	savePath := filepath.Join(t.TempDir(), "downloaded.txt")
	var out bytes.Buffer
	renderTaskDetails(&out, store, task, savePath)

	data, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), data)
	assert.Contains(t, out.String(), "Saved attachment to")
}

func TestRenderTaskDetailsMissingBlobDegrades(t *testing.T) {
	task := &models.Task{
		ID:          "t1",
		Title:       "Ship it",
		Status:      models.StatusTodo,
		Category:    models.CategoryWork,
		Attachments: []models.TaskAttachment{{FileURL: "u1/lost.txt"}},
	}

	var out bytes.Buffer
	renderTaskDetails(&out, newMemStore(), task, "")
	assert.Contains(t, out.String(), "unavailable")
}
