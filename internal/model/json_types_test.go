package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScansMySQLBytes(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["urgent","refund"]`)))
	assert.Equal(t, StringList{"urgent", "refund"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}

func TestStringListValueNeverNull(t *testing.T) {
	var l StringList
	v, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestEntitySetRoundTrip(t *testing.T) {
	e := EntitySet{Phones: []string{"+919876543210"}, Emails: []string{"a@x.com"}}
	v, err := e.Value()
	require.NoError(t, err)

	var out EntitySet
	require.NoError(t, out.Scan(v))
	assert.Equal(t, e, out)
}
