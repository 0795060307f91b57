package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
	"github.com/feral-file/ff-computed-properties/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type publisherTestMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupPublisherTest(t *testing.T) *publisherTestMocks {
	ctrl := gomock.NewController(t)
	return &publisherTestMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

var testConfig = jetstream.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "COMPUTED_PROPERTIES",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "worker-compute",
	SubjectPrefix:  "computed_properties",
}

func TestNewPublisher_EnsuresStream(t *testing.T) {
	m := setupPublisherTest(t)
	ctx := context.Background()

	m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().EnsureStream(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
			assert.Equal(t, "COMPUTED_PROPERTIES", cfg.Name)
			assert.Equal(t, []string{"computed_properties.>"}, cfg.Subjects)
			assert.Equal(t, 24*time.Hour, cfg.Duplicates)
			return nil
		})

	pub, err := jetstream.NewPublisher(ctx, testConfig, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestNewPublisher_StreamErrorClosesConnection(t *testing.T) {
	m := setupPublisherTest(t)
	ctx := context.Background()

	m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(errors.New("insufficient resources"))
	m.conn.EXPECT().Close()

	_, err := jetstream.NewPublisher(ctx, testConfig, m.natsJS, adapter.NewJSON())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMPUTED_PROPERTIES")
}

func TestNewPublisher_ConnectError(t *testing.T) {
	m := setupPublisherTest(t)

	m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nil, nil, errors.New("no servers available"))

	_, err := jetstream.NewPublisher(context.Background(), testConfig, m.natsJS, adapter.NewJSON())
	require.Error(t, err)
}

func TestPublisher_PublishChange(t *testing.T) {
	m := setupPublisherTest(t)
	ctx := context.Background()

	m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)

	pub, err := jetstream.NewPublisher(ctx, testConfig, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	notification := domain.ChangeNotification{
		ID:                   "01JX",
		DedupKey:             "ws-1:UserProperty:up-email:u1:4",
		WorkspaceID:          "ws-1",
		UserID:               "u1",
		Kind:                 domain.ChangeKindUserPropertyUpdated,
		ComputedPropertyType: domain.ComputedPropertyTypeUserProperty,
		ComputedPropertyID:   "up-email",
		Version:              4,
		Value:                json.RawMessage(`"a@b.c"`),
	}

	m.js.EXPECT().Publish(ctx, "computed_properties.ws-1.user_property_updated", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded domain.ChangeNotification
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, notification.DedupKey, decoded.DedupKey)
			assert.JSONEq(t, `"a@b.c"`, string(decoded.Value))
			assert.Len(t, opts, 1)
			return &natsjs.PubAck{Stream: "COMPUTED_PROPERTIES", Sequence: 7}, nil
		})

	require.NoError(t, pub.PublishChange(ctx, notification))

	m.conn.EXPECT().Close()
	pub.Close()
}

func TestPublisher_PublishChange_Error(t *testing.T) {
	m := setupPublisherTest(t)
	ctx := context.Background()

	m.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(m.conn, m.js, nil)
	m.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(nil)

	pub, err := jetstream.NewPublisher(ctx, testConfig, m.natsJS, adapter.NewJSON())
	require.NoError(t, err)

	m.js.EXPECT().Publish(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("nats: timeout"))

	err = pub.PublishChange(ctx, domain.ChangeNotification{WorkspaceID: "ws-1", Kind: domain.ChangeKindSegmentEntered})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats: timeout")
}
