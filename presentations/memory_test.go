/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presentations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &Presentation{Name: "Luna", Image: "/public/imagenes/a.png", Titles: []Title{{Title: "Hola", Video: "/public/videos/a.mp4"}}}
	require.NoError(t, store.Save(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &Presentation{Name: "Luna", Image: "/public/imagenes/b.png"}
	require.NoError(t, store.Save(ctx, second))

	found, err := store.FindByName(ctx, "Luna")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID, "oldest match wins")

	found.Titles[0].Title = "changed"
	again, err := store.FindByName(ctx, "Luna")
	require.NoError(t, err)
	assert.Equal(t, "Hola", again.Titles[0].Title)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []Title{}, all[1].Titles)
}

func TestMemoryStoreNotFound(t *testing.T) {
	_, err := NewMemoryStore().FindByName(context.Background(), "luna")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRequiresName(t *testing.T) {
	err := NewMemoryStore().Save(context.Background(), &Presentation{})
	assert.Error(t, err)
}
