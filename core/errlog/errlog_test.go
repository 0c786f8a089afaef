package errlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"stock-manager/core/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func TestRecordWritesJSONLine(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(nopCloser{buf})

	err := apperror.Wrap("StockItemSell", apperror.KindInsufficientQuantity, fmt.Errorf("owned 2, requested 5"))
	require.NoError(t, l.Record(err))

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "StockItemSell", entry.Op)
	assert.Equal(t, "insufficient_quantity", entry.Kind)
	assert.Contains(t, entry.Error, "owned 2, requested 5")
	assert.False(t, entry.Time.IsZero())
}

func TestRecordNilIsNoop(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(nopCloser{buf})

	require.NoError(t, l.Record(nil))
	assert.Zero(t, buf.Len())
}

func TestRecordAppendsOneLinePerError(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(nopCloser{buf})

	require.NoError(t, l.Record(apperror.New("OpA", apperror.KindNotFound, "missing")))
	require.NoError(t, l.Record(apperror.New("OpB", apperror.KindStorage, "down")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestOpenAppends(t *testing.T) {
	path := t.TempDir() + "/error.log"

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(apperror.New("OpA", apperror.KindValidation, "bad input")))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(apperror.New("OpB", apperror.KindValidation, "bad input")))
	require.NoError(t, l.Close())
}
