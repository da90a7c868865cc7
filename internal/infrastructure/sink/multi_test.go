package sink_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/veil/internal/application/port"
	portmocks "github.com/bnema/veil/internal/application/port/mocks"
	"github.com/bnema/veil/internal/infrastructure/sink"
)

func TestMultiSink_WritesEverySink(t *testing.T) {
	ctrl := gomock.NewController(t)

	failing := portmocks.NewMockStylesheetSink(ctrl)
	failing.EXPECT().SetText(gomock.Any(), sampleCSS).Return(errors.New("boom"))
	failing.EXPECT().Name().Return("broken").AnyTimes()

	mem := sink.NewMemorySink()
	multi := sink.NewMultiSink(failing, nil, mem)

	err := multi.SetText(testCtx(), sampleCSS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, sampleCSS, mem.Snapshot().CSS)
	assert.Equal(t, "broken+http", multi.Name())
}

func TestMultiSink_NotReadyPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)

	pending := portmocks.NewMockStylesheetSink(ctrl)
	pending.EXPECT().SetText(gomock.Any(), gomock.Any()).Return(port.ErrSinkNotReady)

	err := sink.NewMultiSink(pending).SetText(testCtx(), sampleCSS)
	assert.ErrorIs(t, err, port.ErrSinkNotReady)

	assert.ErrorIs(t, sink.NewMultiSink().SetText(testCtx(), sampleCSS), port.ErrSinkNotReady)
}
