package admin

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

func jsonBytes(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(err error, context string, metadata map[string]any) {
	m.Called(err, context, metadata)
}

// panicReporter stands in for a telemetry backend that is itself broken.
type panicReporter struct{}

func (panicReporter) Report(err error, context string, metadata map[string]any) {
	panic("telemetry backend down")
}
