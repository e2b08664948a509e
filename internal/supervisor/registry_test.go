package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTransaction struct {
	records []ApplicationRecord
}

func (tx *memoryTransaction) Insert(record ApplicationRecord) error {
	tx.records = append(tx.records, record)
	return nil
}

type memoryPersistence struct {
	failBegin  bool
	failCommit bool
	committed  []ApplicationRecord
}

func (p *memoryPersistence) BeginTransaction() (Transaction, error) {
	if p.failBegin {
		return nil, errors.New("begin transaction failed")
	}
	return &memoryTransaction{}, nil
}

func (p *memoryPersistence) Commit(tx Transaction) error {
	if p.failCommit {
		return errors.New("commit failed")
	}
	mt := tx.(*memoryTransaction)
	p.committed = append(p.committed, mt.records...)
	return nil
}

func TestRegistrySubmitCreationRequestValidation(t *testing.T) {
	reg := NewRegistry(t.TempDir(), 4, nil, nil)
	_, err := reg.SubmitCreationRequest(context.Background(), CreationRequest{})
	require.ErrorIs(t, err, ErrConfigurationInvalid)
}

func TestRegistrySubmitCreationRequestSpawnFailure(t *testing.T) {
	reg := NewRegistry(t.TempDir(), 4, nil, nil)
	_, err := reg.SubmitCreationRequest(context.Background(), CreationRequest{
		Name:    "bad",
		Command: Command{Program: "no-such-program-xyz"},
	})
	require.ErrorIs(t, err, ErrSpawnFailed)
	assert.Empty(t, reg.List())
}

func TestRegistrySubmitCreationRequestPersistenceFailure(t *testing.T) {
	persistence := &memoryPersistence{failBegin: true}
	reg := NewRegistry(t.TempDir(), 4, nil, persistence)
	_, err := reg.SubmitCreationRequest(context.Background(), CreationRequest{
		Name:    "whoami",
		Command: Command{Program: "sh", Args: []string{"-c", "exit 0"}},
	})
	require.ErrorIs(t, err, ErrPersistenceFailure)
	assert.Empty(t, reg.List())
}

func TestRegistryEndRemovesApplication(t *testing.T) {
	reg := NewRegistry(t.TempDir(), 4, nil, nil)
	id, err := reg.SubmitCreationRequest(context.Background(), CreationRequest{
		Name:    "quick",
		Command: Command{Program: "sh", Args: []string{"-c", "exit 0"}},
	})
	require.NoError(t, err)

	app, ok := reg.Lookup(id)
	require.True(t, ok)
	require.NoError(t, app.Wait())

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := reg.Lookup(id); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("application was not removed from the registry after End")
}
