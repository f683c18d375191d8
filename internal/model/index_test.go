package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterIndex(t *testing.T) {
	f := FilterIndex{
		"Pune":   {"Pune": {"Onion", "Tomato"}, "Manchar": {"Potato"}},
		"Nashik": {"Lasalgaon": {"Onion"}},
	}

	assert.Equal(t, []string{"Nashik", "Pune"}, f.Districts())
	assert.Equal(t, []string{"Manchar", "Pune"}, f.Markets("Pune"))
	assert.Equal(t, []string{"Manchar", "Pune"}, f.Markets("pune"))
	assert.Nil(t, f.Markets("Latur"))
	assert.True(t, f.Contains("Pune", "Pune", "Tomato"))
	assert.False(t, f.Contains("Pune", "Pune", "Potato"))
}

func TestHistoryIndex_LookupIsCaseInsensitive(t *testing.T) {
	h := NewHistoryIndex([]Series{
		{Commodity: "Tomato", Market: "Pune", Records: []PriceRecord{{ModalPrice: 1}}},
		{Commodity: "Onion", Market: "Lasalgaon"},
	})

	s, ok := h.Lookup("TOMATO", " pune ")
	require.True(t, ok)
	assert.Equal(t, "Tomato", s.Commodity)
	assert.Len(t, s.Records, 1)

	_, ok = h.Lookup("Tomato", "Nashik")
	assert.False(t, ok)
	assert.Equal(t, 2, h.Len())

	all := h.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Onion", all[0].Commodity)
}

func TestHistoryIndex_Nil(t *testing.T) {
	var h *HistoryIndex
	_, ok := h.Lookup("Tomato", "Pune")
	assert.False(t, ok)
	assert.Nil(t, h.All())
	assert.Zero(t, h.Len())
}
