package api

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/mocks"
	"github.com/bitmark-inc/confirm-trends/schema"
)

func TestSnapshotReload(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	snapshot := NewSnapshot(m)

	dataset, refresh := snapshot.Current()
	assert.Nil(t, dataset)
	assert.Equal(t, "", refresh.ID)

	first := testDataset()
	second := loader.NewDataset(nil)

	gomock.InOrder(
		m.EXPECT().LatestDataset(gomock.Any()).Return(first, schema.Refresh{ID: "a"}, nil),
		m.EXPECT().LatestDataset(gomock.Any()).Return(nil, schema.Refresh{}, errors.New("timeout")),
		m.EXPECT().LatestDataset(gomock.Any()).Return(second, schema.Refresh{ID: "a"}, nil),
		m.EXPECT().LatestDataset(gomock.Any()).Return(second, schema.Refresh{ID: "b"}, nil),
	)

	assert.Nil(t, snapshot.Reload(context.Background()))
	dataset, refresh = snapshot.Current()
	assert.Equal(t, first, dataset)
	assert.Equal(t, "a", refresh.ID)

	assert.NotNil(t, snapshot.Reload(context.Background()))
	dataset, _ = snapshot.Current()
	assert.Equal(t, first, dataset, "failed reload keeps the published data-set")

	assert.Nil(t, snapshot.Reload(context.Background()))
	dataset, _ = snapshot.Current()
	assert.Equal(t, first, dataset, "same refresh is not republished")

	assert.Nil(t, snapshot.Reload(context.Background()))
	dataset, refresh = snapshot.Current()
	assert.Equal(t, second, dataset)
	assert.Equal(t, "b", refresh.ID)
}
