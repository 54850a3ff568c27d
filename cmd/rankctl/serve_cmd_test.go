package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmd_FlagsRegistered(t *testing.T) {
	cmd := newServeCmd()
	assert.NotNil(t, cmd.Flags().Lookup("db"))
	assert.NotNil(t, cmd.Flags().Lookup("index"))
	assert.NotNil(t, cmd.Flags().Lookup("addr"))
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("log-level"))
}
