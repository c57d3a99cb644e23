package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTransactionsUnsupported(t *testing.T) {
	standalone := mongo.CommandError{
		Code:    20,
		Message: "Transaction numbers are only allowed on a replica set member or mongos",
	}

	assert.True(t, transactionsUnsupported(standalone))
	// the driver often returns the command error wrapped
	assert.True(t, transactionsUnsupported(fmt.Errorf("transaction failed: %w", standalone)))

	assert.False(t, transactionsUnsupported(nil))
	assert.False(t, transactionsUnsupported(errors.New("network down")))
	assert.False(t, transactionsUnsupported(mongo.CommandError{Code: 11000}))
}
