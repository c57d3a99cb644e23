package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	line := CartLine{Price: 25, Quantity: 3}
	assert.Equal(t, 75.0, line.LineTotal())
}

func TestLineTotalClampsQuantity(t *testing.T) {
	// a zero quantity line still counts as one unit
	line := CartLine{Price: 25}
	assert.Equal(t, 25.0, line.LineTotal())
}
