package sqlxrepos

import (
	"database/sql"
	"database/sql/driver"

	"github.com/pkg/errors"

	"github.com/maendeleo/backend/core"
)

// trapConnErr maps a dead-connection err to a core shutdown error so the
// server can stop gracefully instead of serving 500s off a lost pool.
func trapConnErr(err error, msg string) error {
	if err == driver.ErrBadConn || err == sql.ErrConnDone {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
