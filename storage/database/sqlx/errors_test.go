package sqlxrepos

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/maendeleo/backend/core"
	"github.com/maendeleo/backend/core/course"
)

func Test_trapConnErr(t *testing.T) {
	assert.True(t, core.IsShutdown(trapConnErr(driver.ErrBadConn, "querying progress rows")))
	assert.True(t, core.IsShutdown(trapConnErr(sql.ErrConnDone, "querying progress rows")))

	err := trapConnErr(errors.New("oops"), "querying progress rows")
	assert.False(t, core.IsShutdown(err))
	assert.EqualError(t, err, "querying progress rows: oops")
}

func Test_trapNoRowsErr(t *testing.T) {
	assert.Equal(t, course.ErrNotFound, trapNoRowsErr(sql.ErrNoRows, "getting module"))
	assert.True(t, core.IsShutdown(trapNoRowsErr(sql.ErrConnDone, "getting module")))
}
