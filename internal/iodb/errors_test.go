package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"connection", ConnectionError("localhost", 5432, "biolexica",
			"postgres", orig), errcode.DBConnectionError, 4},
		{"not connected", NotConnectedError(),
			errcode.DBNotConnectedError, 0},
		{"table check", TableExistsCheckError("literal_mappings", orig),
			errcode.DBTableExistsCheckError, 1},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, v.err, &gnErr)
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, v.vars)
			if v.code != errcode.DBNotConnectedError {
				assert.ErrorIs(t, gnErr.Err, orig)
			}
		})
	}
}
