package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateIndex(t *testing.T) {
	dup := &mysql.MySQLError{Number: mysqlDuplicateKeyName, Message: "Duplicate key name 'idx_shows_venue_id'"}

	assert.True(t, isDuplicateIndex(dup))
	assert.True(t, isDuplicateIndex(fmt.Errorf("create index: %w", dup)))

	assert.False(t, isDuplicateIndex(&mysql.MySQLError{Number: 1146, Message: "Table 'fyyur.shows' doesn't exist"}))
	assert.False(t, isDuplicateIndex(errors.New("index idx_shows_venue_id already exists")))
}
