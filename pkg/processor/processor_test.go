package processor

import (
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
)

func newTestProcessor(opts ...Option) *MessageProcessor {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(append([]Option{WithLogger(logger)}, opts...)...)
}

func parseBatch(t *testing.T, input string) []*messages.Message {
	t.Helper()
	batch, err := messages.MessagesFromJSON([]byte(input))
	require.NoError(t, err)
	return batch
}

const plantCardBatch = `[
	{ "surfaceId": "card", "beginRendering": { "root": "root", "catalogId": "standard" } },
	{ "surfaceId": "card", "surfaceUpdate": { "components": [
		{ "id": "root", "component": { "Card": { "child": "col" } } },
		{ "id": "col", "component": { "Column": { "children": { "explicitList": ["title", "height"] } } } },
		{ "id": "title", "component": { "Text": { "text": { "path": "/plant/common_name" } } } },
		{ "id": "height", "component": { "Text": { "text": { "path": "/plant/height" } } } }
	] } },
	{ "surfaceId": "card", "dataModelUpdate": { "contents": [
		{ "key": "plant", "valueMap": [
			{ "key": "common_name", "valueString": "Neem" },
			{ "key": "height", "valueNumber": 12.5 }
		] }
	] } }
]`

func TestProcessBatchBuildsSurface(t *testing.T) {
	p := newTestProcessor()
	diags := p.ProcessJSON([]byte(plantCardBatch))
	assert.Empty(t, diags)

	surface, ok := p.Surface("card")
	require.True(t, ok)
	assert.Equal(t, "card", surface.ID())
	assert.Equal(t, "standard", surface.CatalogID())
	assert.Equal(t, "root", surface.RootID())

	root, ok := surface.Root()
	require.True(t, ok)
	assert.Equal(t, messages.ComponentCard, root.Kind())

	ids := make([]string, 0, 4)
	for _, c := range surface.Components() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"root", "col", "title", "height"}, ids)

	got, ok := p.GetData("card", "/plant/common_name")
	require.True(t, ok)
	assert.Equal(t, "Neem", got)
}

func TestSequentialBatchesComposeLikeOne(t *testing.T) {
	full := parseBatch(t, plantCardBatch)

	split := newTestProcessor()
	assert.Empty(t, split.ProcessMessages(full[:1]))
	assert.Empty(t, split.ProcessMessages(full[1:]))

	whole := newTestProcessor()
	assert.Empty(t, whole.ProcessMessages(full))

	splitSurface, ok := split.Surface("card")
	require.True(t, ok)
	wholeSurface, ok := whole.Surface("card")
	require.True(t, ok)

	assert.Equal(t, wholeSurface.Components(), splitSurface.Components())
	assert.Equal(t, wholeSurface.Data().Data(), splitSurface.Data().Data())
}

func TestDeleteSurfaceRemovesIt(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	diags := p.ProcessJSON([]byte(`[{ "surfaceId": "card", "deleteSurface": {} }]`))
	assert.Empty(t, diags)

	_, ok := p.Surface("card")
	assert.False(t, ok)
	assert.Empty(t, p.SurfaceIDs())
}

func TestUpdateBeforeBeginRenderingIsSkipped(t *testing.T) {
	p := newTestProcessor()
	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "ghost", "surfaceUpdate": { "components": [] } },
		{ "surfaceId": "ghost", "dataModelUpdate": { "contents": [] } },
		{ "surfaceId": "ghost", "deleteSurface": {} }
	]`))
	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.ErrorIs(t, d.Err, core.ErrSurfaceNotFound)
		assert.Equal(t, "ghost", d.SurfaceID)
	}
	assert.Empty(t, p.SurfaceIDs())
}

func TestUnknownMessageKindSkippedSiblingsApply(t *testing.T) {
	p := newTestProcessor()
	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "s", "beginRendering": { "root": "r" } },
		{ "surfaceId": "s", "replaceEverything": {} },
		{ "surfaceId": "s", "dataModelUpdate": { "contents": [ { "key": "k", "valueString": "v" } ] } }
	]`))
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Index)
	assert.Equal(t, messages.MessageKindUnknown, diags[0].Kind)

	got, ok := p.GetData("s", "/k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMalformedElementSkippedSiblingsApply(t *testing.T) {
	p := newTestProcessor()
	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "s", "beginRendering": {}, "deleteSurface": {} },
		{ "surfaceId": "s", "beginRendering": { "root": "r" } }
	]`))
	require.Len(t, diags, 1)
	assert.Equal(t, 0, diags[0].Index)

	_, ok := p.Surface("s")
	assert.True(t, ok)
}

func TestMalformedBatchIsOneDiagnostic(t *testing.T) {
	p := newTestProcessor()
	diags := p.ProcessJSON([]byte(`{"not": "an array"}`))
	require.Len(t, diags, 1)
	assert.Equal(t, -1, diags[0].Index)
}

func TestBeginRenderingOnExistingIDStartsFresh(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "card", "beginRendering": { "root": "other" } }
	]`))
	assert.Empty(t, diags)

	surface, ok := p.Surface("card")
	require.True(t, ok)
	assert.Equal(t, "other", surface.RootID())
	assert.Empty(t, surface.Components())
	assert.Empty(t, surface.Data().Data())
}

func TestSurfaceUpdateUpsertsComponents(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "card", "surfaceUpdate": { "components": [
			{ "id": "title", "component": { "Text": { "text": { "literalString": "renamed" } } } },
			{ "id": "footer", "component": { "Divider": {} } }
		] } }
	]`))
	assert.Empty(t, diags)

	surface, _ := p.Surface("card")
	title, ok := surface.Component("title")
	require.True(t, ok)
	props := title.Props.(*messages.TextProps)
	literal, _ := props.Text.Literal()
	assert.Equal(t, "renamed", literal)

	_, ok = surface.Component("footer")
	assert.True(t, ok)
	assert.Len(t, surface.Components(), 5)
}

func TestCyclicUpdateRejectedTreeUnchanged(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "card", "surfaceUpdate": { "components": [
			{ "id": "col", "component": { "Column": { "children": { "explicitList": ["root"] } } } }
		] } }
	]`))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "its own ancestor")

	surface, _ := p.Surface("card")
	col, ok := surface.Component("col")
	require.True(t, ok)
	assert.Equal(t, []string{"title", "height"}, col.ChildIDs())
}

func TestDataModelUpdatePatchForm(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	diags := p.ProcessJSON([]byte(`[
		{ "surfaceId": "card", "dataModelUpdate": { "patch": [
			{ "op": "replace", "path": "/plant/common_name", "value": "Banyan" },
			{ "op": "remove", "path": "/plant/height" }
		] } }
	]`))
	assert.Empty(t, diags)

	got, ok := p.GetData("card", "/plant/common_name")
	require.True(t, ok)
	assert.Equal(t, "Banyan", got)

	_, ok = p.GetData("card", "/plant/height")
	assert.False(t, ok)
}

func TestClearSurfacesIsIdempotent(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	p.ClearSurfaces()
	assert.Empty(t, p.SurfaceIDs())
	assert.Empty(t, p.Surfaces())

	p.ClearSurfaces()
	assert.Empty(t, p.SurfaceIDs())

	// The store keeps no memory of cleared surfaces: rendering again works
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))
	assert.Equal(t, []string{"card"}, p.SurfaceIDs())
}

func TestSurfaceSnapshotIsolation(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(plantCardBatch)))

	snapshot, ok := p.Surface("card")
	require.True(t, ok)

	require.Empty(t, p.ProcessJSON([]byte(`[
		{ "surfaceId": "card", "dataModelUpdate": { "contents": [
			{ "key": "plant", "valueMap": [ { "key": "common_name", "valueString": "Banyan" } ] }
		] } }
	]`)))

	got, ok := snapshot.Data().Get("/plant/common_name")
	require.True(t, ok)
	assert.Equal(t, "Neem", got)

	got, ok = p.GetData("card", "/plant/common_name")
	require.True(t, ok)
	assert.Equal(t, "Banyan", got)
}

func TestSubscribeNotifiesChangedSurfaces(t *testing.T) {
	p := newTestProcessor()

	var notified []string
	unsubscribe := p.Subscribe(func(surfaceID string) {
		notified = append(notified, surfaceID)
	})

	require.Empty(t, p.ProcessJSON([]byte(`[
		{ "surfaceId": "a", "beginRendering": { "root": "r" } },
		{ "surfaceId": "b", "beginRendering": { "root": "r" } }
	]`)))
	sort.Strings(notified)
	assert.Equal(t, []string{"a", "b"}, notified)

	notified = nil
	p.ClearSurfaces()
	sort.Strings(notified)
	assert.Equal(t, []string{"a", "b"}, notified)

	notified = nil
	unsubscribe()
	require.Empty(t, p.ProcessJSON([]byte(`[
		{ "surfaceId": "a", "beginRendering": { "root": "r" } }
	]`)))
	assert.Empty(t, notified)
}

func TestMultipleSurfacesKeepCreationOrder(t *testing.T) {
	p := newTestProcessor()
	require.Empty(t, p.ProcessJSON([]byte(`[
		{ "surfaceId": "z", "beginRendering": { "root": "r" } },
		{ "surfaceId": "a", "beginRendering": { "root": "r" } },
		{ "surfaceId": "m", "beginRendering": { "root": "r" } }
	]`)))
	assert.Equal(t, []string{"z", "a", "m"}, p.SurfaceIDs())

	surfaces := p.Surfaces()
	require.Len(t, surfaces, 3)
	assert.Equal(t, "z", surfaces[0].ID())
	assert.Equal(t, "m", surfaces[2].ID())
}
