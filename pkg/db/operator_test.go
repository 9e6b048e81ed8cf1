package db_test

import (
	"testing"

	"github.com/gnames/biolexica/internal/iodb"
	"github.com/gnames/biolexica/pkg/db"
)

func TestPgxOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}
