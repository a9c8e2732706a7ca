package adapter

import (
	"fmt"

	"github.com/arloliu/voxblit/voxel"
)

// MockInputHandler implements the InputHandler interface for testing.
type MockInputHandler struct {
	data         []byte
	readFunc     func(pos uint64, dst []byte) error
	destroyFunc  func() error
	readCalls    int
	destroyCalls int
}

// NewMockInputHandler creates a mock input backed by data.
func NewMockInputHandler(data []byte) *MockInputHandler {
	m := &MockInputHandler{data: data}
	m.readFunc = func(pos uint64, dst []byte) error {
		if pos+uint64(len(dst)) > uint64(len(m.data)) {
			return fmt.Errorf("read past end of %d-byte buffer", len(m.data))
		}
		copy(dst, m.data[pos:])

		return nil
	}

	return m
}

func (m *MockInputHandler) Read(pos uint64, dst []byte) error {
	m.readCalls++

	return m.readFunc(pos, dst)
}

func (m *MockInputHandler) Destroy() error {
	m.destroyCalls++
	if m.destroyFunc != nil {
		return m.destroyFunc()
	}

	return nil
}

// MockOutputHandler implements the OutputHandler interface for testing.
// Writes land in a sparse in-memory buffer that grows as needed.
type MockOutputHandler struct {
	data         []byte
	writeFunc    func(pos uint64, data []byte) error
	destroyFunc  func() error
	writeCalls   int
	destroyCalls int
}

// NewMockOutputHandler creates an empty mock output sink.
func NewMockOutputHandler() *MockOutputHandler {
	m := &MockOutputHandler{}
	m.writeFunc = func(pos uint64, data []byte) error {
		end := pos + uint64(len(data))
		if end > uint64(len(m.data)) {
			grown := make([]byte, end)
			copy(grown, m.data)
			m.data = grown
		}
		copy(m.data[pos:], data)

		return nil
	}

	return m
}

func (m *MockOutputHandler) Write(pos uint64, data []byte) error {
	m.writeCalls++

	return m.writeFunc(pos, data)
}

func (m *MockOutputHandler) Destroy() error {
	m.destroyCalls++
	if m.destroyFunc != nil {
		return m.destroyFunc()
	}

	return nil
}

// MockParseHandler implements the ParseHandler interface for testing.
type MockParseHandler struct {
	supported    voxel.ChannelSet
	buildFunc    func(region voxel.RegionRange, channels voxel.ChannelSet, in *InputCursor) (*voxel.Tree, error)
	buildCalls   int
	destroyCalls int
}

// NewMockParseHandler creates a mock parser producing an empty tree over
// the requested region.
func NewMockParseHandler(supported voxel.ChannelSet) *MockParseHandler {
	m := &MockParseHandler{supported: supported}
	m.buildFunc = func(region voxel.RegionRange, channels voxel.ChannelSet, in *InputCursor) (*voxel.Tree, error) {
		return voxel.NewTree(region, channels, nil), nil
	}

	return m
}

func (m *MockParseHandler) SupportedChannels() voxel.ChannelSet {
	return m.supported
}

func (m *MockParseHandler) Build(region voxel.RegionRange, channels voxel.ChannelSet, in *InputCursor) (*voxel.Tree, error) {
	m.buildCalls++

	return m.buildFunc(region, channels, in)
}

func (m *MockParseHandler) Destroy() error {
	m.destroyCalls++

	return nil
}

// MockSerializeHandler implements the SerializeHandler interface for
// testing.
type MockSerializeHandler struct {
	supported    voxel.ChannelSet
	consumeFunc  func(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *OutputCursor) error
	consumeCalls int
	destroyCalls int
}

// NewMockSerializeHandler creates a mock serializer that drains the tree
// without writing anything.
func NewMockSerializeHandler(supported voxel.ChannelSet) *MockSerializeHandler {
	m := &MockSerializeHandler{supported: supported}
	m.consumeFunc = func(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *OutputCursor) error {
		for _, err := range tree.Nodes() {
			if err != nil {
				return err
			}
		}

		return nil
	}

	return m
}

func (m *MockSerializeHandler) SupportedChannels() voxel.ChannelSet {
	return m.supported
}

func (m *MockSerializeHandler) Consume(tree *voxel.Tree, region voxel.RegionRange, channels voxel.ChannelSet, out *OutputCursor) error {
	m.consumeCalls++

	return m.consumeFunc(tree, region, channels, out)
}

func (m *MockSerializeHandler) Destroy() error {
	m.destroyCalls++

	return nil
}
